package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Level is either a numeric level or a named rank. Exactly one of Number
// and Rank is meaningful: a non-empty Rank wins.
type Level struct {
	Number int
	Rank   string
}

// NumericLevel returns a numeric level.
func NumericLevel(n int) *Level {
	return &Level{Number: n}
}

// RankLevel returns a rank level.
func RankLevel(rank string) *Level {
	return &Level{Rank: rank}
}

// IsRank reports whether the level is a named rank.
func (l Level) IsRank() bool {
	return l.Rank != ""
}

// String renders the level as it would appear on a sheet.
func (l Level) String() string {
	if l.IsRank() {
		return l.Rank
	}
	return strconv.Itoa(l.Number)
}

// MarshalJSON encodes a rank as a JSON string and a number as a JSON number.
func (l Level) MarshalJSON() ([]byte, error) {
	if l.IsRank() {
		return json.Marshal(l.Rank)
	}
	return json.Marshal(l.Number)
}

// UnmarshalJSON accepts a JSON string or number.
func (l *Level) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*l = Level{Rank: t}
	case float64:
		*l = Level{Number: int(t)}
	default:
		return fmt.Errorf("level must be a string or number, got %s", string(data))
	}
	return nil
}
