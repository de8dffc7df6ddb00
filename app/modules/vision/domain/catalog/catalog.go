package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind is the declared value type of a stat.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindPosition Kind = "position"
	KindDuration Kind = "duration"
)

// Entry is one catalog row.
type Entry struct {
	ID   int    `yaml:"id"`
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
}

// Catalog is a read-only lookup from stat field key to its identifier and type.
type Catalog struct {
	entries []Entry
	byKey   map[string]Entry
}

type catalogFile struct {
	Stats []Entry `yaml:"stats"`
}

// Parse decodes a YAML catalog and validates ids, keys and kinds.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stat catalog: %w", err)
	}
	if len(file.Stats) == 0 {
		return nil, fmt.Errorf("stat catalog is empty")
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(file.Stats)),
		byKey:   make(map[string]Entry, len(file.Stats)),
	}
	ids := make(map[int]string, len(file.Stats))

	for _, e := range file.Stats {
		e.Key = normalizeKey(e.Key)
		if e.Key == "" {
			return nil, fmt.Errorf("stat catalog entry %d has no key", e.ID)
		}
		if e.ID <= 0 {
			return nil, fmt.Errorf("stat %s has invalid id %d", e.Key, e.ID)
		}
		switch e.Kind {
		case KindNumeric, KindPosition, KindDuration:
		case "":
			e.Kind = KindNumeric
		default:
			return nil, fmt.Errorf("stat %s has unknown kind %q", e.Key, e.Kind)
		}
		if _, dup := c.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate stat key %s", e.Key)
		}
		if other, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("stat id %d used by both %s and %s", e.ID, other, e.Key)
		}
		ids[e.ID] = e.Key
		c.byKey[e.Key] = e
		c.entries = append(c.entries, e)
	}

	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded stat catalog is invalid: %v", err))
	}
	return c
})

// Default returns the embedded catalog. It is shared and must not be modified.
func Default() *Catalog {
	return defaultCatalog()
}

// Lookup returns the entry for a field key.
func (c *Catalog) Lookup(fieldKey string) (Entry, bool) {
	e, ok := c.byKey[normalizeKey(fieldKey)]
	return e, ok
}

// MustLookup is Lookup for keys the code itself declares.
func (c *Catalog) MustLookup(fieldKey string) Entry {
	e, ok := c.Lookup(fieldKey)
	if !ok {
		panic(fmt.Sprintf("stat %q is not in the catalog", fieldKey))
	}
	return e
}

// Entries returns a copy of every entry in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
