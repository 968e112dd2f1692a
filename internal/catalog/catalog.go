// Package catalog describes the games the arcade offers to a browser or menu.
// Entries come from the game registry and optionally from a games.json file
// listing externally hosted games.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/hue-arcade/internal/registry"
)

// Entry is one catalog item. The JSON field names match the games.json
// format served to the home page.
type Entry struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Thumbnail string `json:"img"`
	URL       string `json:"url"`
}

// FromRegistry builds entries for every registered game.
func FromRegistry() []Entry {
	games := registry.List()
	entries := make([]Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, Entry{
			ID:        g.ID,
			Name:      g.Title,
			Thumbnail: "/assets/" + g.ID + ".png",
			URL:       "/games/" + g.ID + "/",
		})
	}
	return entries
}

// Load reads a games.json file: a JSON array of entries.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot read %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse %s: %w", path, err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog: entry %d in %s has no name", i, path)
		}
	}
	return entries, nil
}

// Merge appends extra entries to base, skipping any whose ID or name is
// already present. Order is preserved.
func Merge(base, extra []Entry) []Entry {
	out := make([]Entry, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))

	add := func(e Entry) {
		key := strings.ToLower(e.Name)
		if e.ID != "" {
			key = "id:" + e.ID
		}
		if seen[key] || seen[strings.ToLower(e.Name)] {
			return
		}
		seen[key] = true
		seen[strings.ToLower(e.Name)] = true
		out = append(out, e)
	}

	for _, e := range base {
		add(e)
	}
	for _, e := range extra {
		add(e)
	}
	return out
}

// Filter returns the entries whose name contains term, ignoring case.
// An empty term matches everything.
func Filter(entries []Entry, term string) []Entry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), term) {
			out = append(out, e)
		}
	}
	return out
}

// Encode writes entries as a JSON array. A nil slice encodes as [].
func Encode(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("catalog: cannot encode: %w", err)
	}
	return nil
}
