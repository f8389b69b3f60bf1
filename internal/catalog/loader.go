package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"echolens/internal/models"
)

// requiredFields lists the keys every overlay entry must define
var requiredFields = []string{
	"id", "name", "ra", "dec", "koi_period", "koi_prad", "koi_smass", "koi_srad",
	"koi_dor", "koi_teq", "koi_insol", "koi_score", "koi_pdisposition",
}

type overlayFile struct {
	Systems []overlayEntry `yaml:"systems"`
}

type overlayEntry struct {
	ID                      string `yaml:"id"`
	models.StarSystemRecord `yaml:",inline"`
}

// LoadFile reads a YAML catalog overlay:
//
//	systems:
//	  - id: kepler-22-b
//	    name: Kepler-22 b
//	    ra: 289.2175
//	    ...
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog overlay. Entries missing any parameter are rejected.
func Parse(data []byte) ([]Entry, error) {
	var raw struct {
		Systems []map[string]interface{} `yaml:"systems"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	for i, system := range raw.Systems {
		for _, key := range requiredFields {
			if _, ok := system[key]; !ok {
				return nil, fmt.Errorf("catalog entry %d is missing %q", i, key)
			}
		}
	}

	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	entries := make([]Entry, 0, len(file.Systems))
	for _, s := range file.Systems {
		if err := s.StarSystemRecord.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", s.ID, err)
		}
		entries = append(entries, Entry{ID: s.ID, Record: s.StarSystemRecord})
	}
	return entries, nil
}

// Load returns the built-in catalog merged with the overlay at path, if any
func Load(path string) (*Catalog, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	overlay, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.Merge(overlay)
}
