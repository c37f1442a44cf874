package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int               `toml:"version"`
	Values  map[string]string `toml:"values"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Values == nil {
		s.Values = map[string]string{}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
