// Package catalog implements the static lookup catalogs of the advisor.
// Catalogs are built once at startup, optionally overlaid from yaml files,
// and are read-only afterwards, so they can be shared across sessions.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fit-advisor/internal/domain"
)

// seedActivities is the built-in activity catalog. Declaration order matters:
// the parser resolves ties between multiple matching names by iterating the
// catalog in this order.
var seedActivities = []domain.ActivityEntry{
	{Name: "walking", MET: 3.5},
	{Name: "running", MET: 7.5},
	{Name: "cycling", MET: 6.8},
	{Name: "swimming", MET: 5.8},
	{Name: "yoga", MET: 2.5},
	{Name: "weights", MET: 4.0},
	{Name: "dancing", MET: 5.0},
	{Name: "aerobics", MET: 6.0},
	{Name: "hiking", MET: 6.0},
	{Name: "jumping rope", MET: 10.0},
	{Name: "rowing", MET: 7.0},
	{Name: "riding", MET: 4.5},
	{Name: "skating", MET: 7.0},
	{Name: "football", MET: 8.0},
	{Name: "basketball", MET: 6.5},
}

// Activities is the catalog of known activities and their MET values.
// Iteration order is insertion order: seed entries first, overlay entries
// appended after (overlaying a seed entry updates its MET in place).
type Activities struct {
	entries []domain.ActivityEntry
	index   map[string]int
}

// NewActivities creates a catalog from the given entries.
// Names are lowercased; a repeated name updates the earlier entry's MET
// without changing its position.
func NewActivities(entries []domain.ActivityEntry) *Activities {
	a := &Activities{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		a.add(e)
	}
	return a
}

// DefaultActivities creates the built-in activity catalog
func DefaultActivities() *Activities {
	return NewActivities(seedActivities)
}

func (a *Activities) add(e domain.ActivityEntry) {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	if name == "" || e.MET <= 0 {
		return
	}
	if i, exists := a.index[name]; exists {
		a.entries[i].MET = e.MET
		return
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, domain.ActivityEntry{Name: name, MET: e.MET})
}

// MET returns the MET value for an activity name
func (a *Activities) MET(name string) (float64, bool) {
	i, ok := a.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return a.entries[i].MET, true
}

// Entries returns all catalog entries in iteration order
func (a *Activities) Entries() []domain.ActivityEntry {
	out := make([]domain.ActivityEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Names returns all activity names in iteration order
func (a *Activities) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	return names
}

// Examples returns up to n activity names for error messages
func (a *Activities) Examples(n int) []string {
	names := a.Names()
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// Len returns the number of catalog entries
func (a *Activities) Len() int {
	return len(a.entries)
}

// activitiesFile is the yaml overlay file format
type activitiesFile struct {
	Activities []domain.ActivityEntry `yaml:"activities"`
}

// LoadActivitiesFile reads an overlay of activity entries from a yaml file
func LoadActivitiesFile(path string) ([]domain.ActivityEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities file: %w", err)
	}

	var f activitiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse activities file: %w", err)
	}
	return f.Activities, nil
}

// DefaultActivitiesWithOverlay builds the catalog from the seed entries plus
// an optional overlay file. An empty path returns the plain default catalog.
func DefaultActivitiesWithOverlay(path string) (*Activities, error) {
	a := DefaultActivities()
	if path == "" {
		return a, nil
	}
	overlay, err := LoadActivitiesFile(path)
	if err != nil {
		return nil, err
	}
	for _, e := range overlay {
		a.add(e)
	}
	return a, nil
}
