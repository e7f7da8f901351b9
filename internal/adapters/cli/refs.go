package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/rpgdash/internal/models"
)

// resolveCharacter finds a character by id, unique id prefix or
// case-insensitive name.
func resolveCharacter(doc *models.Document, ref string) (*models.Character, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("character reference is empty")
	}
	var byName, byPrefix []*models.Character
	for i := range doc.Characters {
		c := &doc.Characters[i]
		if c.ID == ref {
			return c, nil
		}
		if strings.EqualFold(c.Name, ref) {
			byName = append(byName, c)
		}
		if strings.HasPrefix(c.ID, ref) {
			byPrefix = append(byPrefix, c)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) == 0 && len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byName) > 1 || len(byPrefix) > 1 {
		return nil, fmt.Errorf("character %q is ambiguous, use its id", ref)
	}
	return nil, fmt.Errorf("character %q not found", ref)
}

// resolveModule finds a module by id, 1-based position on the sheet or
// unique id prefix.
func resolveModule(c *models.Character, ref string) (*models.Module, error) {
	ref = strings.TrimSpace(ref)
	for i := range c.Modules {
		if c.Modules[i].ID == ref {
			return &c.Modules[i], nil
		}
	}
	if len(ref) <= 2 {
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.Modules) {
			return &c.Modules[n-1], nil
		}
	}
	var byPrefix []*models.Module
	for i := range c.Modules {
		if ref != "" && strings.HasPrefix(c.Modules[i].ID, ref) {
			byPrefix = append(byPrefix, &c.Modules[i])
		}
	}
	switch len(byPrefix) {
	case 0:
		return nil, fmt.Errorf("module %q not found on %s", ref, c.Name)
	case 1:
		return byPrefix[0], nil
	default:
		return nil, fmt.Errorf("module %q is ambiguous, use its id", ref)
	}
}
