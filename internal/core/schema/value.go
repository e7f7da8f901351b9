package schema

import (
	"encoding/json"
	"math"

	"github.com/example/rpgdash/internal/models"
)

// object is a decoded JSON object read leniently: every accessor reports
// whether the key held a value of the expected type.
type object map[string]any

// toTree turns arbitrary input into a decoded JSON tree. Raw bytes and
// strings are parsed; typed values are round-tripped through JSON. Anything
// that cannot be represented becomes nil.
func toTree(input any) any {
	switch v := input.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case []any, float64, bool:
		return v
	case json.RawMessage:
		return parseTree(v)
	case []byte:
		return parseTree(v)
	case string:
		return parseTree([]byte(v))
	case *models.Document:
		if v == nil {
			return nil
		}
	}
	encoded, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	return parseTree(encoded)
}

func parseTree(raw []byte) any {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil
	}
	return tree
}

func asObject(v any) (object, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return object(m), true
}

func (o object) object(key string) (object, bool) {
	return asObject(o[key])
}

func (o object) str(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

func (o object) strOr(key, def string) string {
	if s, ok := o.str(key); ok {
		return s
	}
	return def
}

func (o object) number(key string) (float64, bool) {
	f, ok := o[key].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (o object) numberOr(key string, def float64) float64 {
	if f, ok := o.number(key); ok {
		return f
	}
	return def
}

func (o object) integer(key string) (int, bool) {
	f, ok := o.number(key)
	if !ok {
		return 0, false
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), true
}

func (o object) intOr(key string, def int) int {
	if n, ok := o.integer(key); ok {
		return n
	}
	return def
}

func (o object) intPtr(key string) *int {
	if n, ok := o.integer(key); ok {
		return &n
	}
	return nil
}

func (o object) boolPtr(key string) *bool {
	if b, ok := o[key].(bool); ok {
		return &b
	}
	return nil
}

// objects returns the object entries of the array at key, dropping anything
// that is not an object. A missing or non-array value yields no entries.
func (o object) objects(key string) []object {
	list, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]object, 0, len(list))
	for _, item := range list {
		if obj, ok := asObject(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

// idSet hands out ids that are unique within one collection, replacing
// missing, empty or repeated ones with fresh ids.
type idSet struct {
	seen  map[string]bool
	newID func() string
}

func newIDSet(newID func() string) *idSet {
	return &idSet{seen: make(map[string]bool), newID: newID}
}

func (s *idSet) claim(o object) string {
	id, ok := o.str("id")
	if !ok || id == "" || s.seen[id] {
		id = s.newID()
	}
	s.seen[id] = true
	return id
}
