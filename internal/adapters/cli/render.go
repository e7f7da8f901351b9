package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/rpgdash/internal/models"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	ok      = color.New(color.FgGreen)
	caution = color.New(color.FgYellow)
	failed  = color.New(color.FgRed)
	accent  = color.New(color.FgHiMagenta)
)

// shortID trims a UUID to its first block for table output.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func die(sides int) string {
	return fmt.Sprintf("d%d", sides)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// formatWhen renders an ISO timestamp in the local zone, or the raw value
// when it does not parse.
func formatWhen(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("Mon 02 Jan 2006 15:04")
}

// ParseWhen accepts RFC 3339 or "2006-01-02 15:04" in the local zone and
// returns the RFC 3339 UTC form stored in sessions.
func ParseWhen(input string) (string, error) {
	input = strings.TrimSpace(input)
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("cannot parse %q as a date, use YYYY-MM-DD HH:MM", input)
}

func moduleLabel(m models.Module) string {
	if m.Title != "" {
		return m.Title
	}
	return strings.ReplaceAll(string(m.Type), "_", " ")
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return ""
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
