package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SurfaceEntry binds a display surface to the attack pattern it runs.
type SurfaceEntry struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	Pattern        string `yaml:"pattern"`          // built-in Go pattern or registered Lua plural
	ClearEveryTick *bool  `yaml:"clear_every_tick"` // nil inherits the engine default
}

// SurfaceCatalog is the ordered list of surfaces to bring up at boot.
type SurfaceCatalog struct {
	entries []SurfaceEntry
	byID    map[string]*SurfaceEntry
}

// LoadSurfaceCatalog loads surfaces.yaml.
func LoadSurfaceCatalog(path string) (*SurfaceCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read surface catalog: %w", err)
	}
	return ParseSurfaceCatalog(raw)
}

// ParseSurfaceCatalog decodes a catalog already in memory.
func ParseSurfaceCatalog(raw []byte) (*SurfaceCatalog, error) {
	var entries []SurfaceEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse surface catalog: %w", err)
	}
	c := &SurfaceCatalog{
		entries: entries,
		byID:    make(map[string]*SurfaceEntry, len(entries)),
	}
	for i := range c.entries {
		e := &c.entries[i]
		if e.ID == "" {
			return nil, fmt.Errorf("surface catalog entry %d: missing id", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("surface catalog: duplicate id %q", e.ID)
		}
		if e.Title == "" {
			e.Title = e.ID
		}
		if e.Pattern == "" {
			e.Pattern = e.ID
		}
		c.byID[e.ID] = e
	}
	return c, nil
}

// Get returns the entry for id, or nil if none.
func (c *SurfaceCatalog) Get(id string) *SurfaceEntry {
	return c.byID[id]
}

// Entries returns every entry in file order.
func (c *SurfaceCatalog) Entries() []SurfaceEntry { return c.entries }

// IDs returns the surface ids in file order.
func (c *SurfaceCatalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Count returns the total number of surfaces loaded.
func (c *SurfaceCatalog) Count() int {
	return len(c.entries)
}

// PatternFor returns the pattern bound to id. Surfaces missing from the
// catalog run the pattern of the same name.
func (c *SurfaceCatalog) PatternFor(id string) string {
	if c == nil {
		return id
	}
	if e := c.byID[id]; e != nil {
		return e.Pattern
	}
	return id
}
