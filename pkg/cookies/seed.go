package cookies

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SeedEntry is one cookie in a YAML seed file.
type SeedEntry struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Domain   string `yaml:"domain,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Secure   bool   `yaml:"secure,omitempty"`
	HTTPOnly bool   `yaml:"http_only,omitempty"`
	MaxAge   int    `yaml:"max_age,omitempty"`
}

// SeedFile is the YAML seed file layout:
//
//	cookies:
//	  - url: https://example.com/
//	    name: session
//	    value: abc123
//	    max_age: 3600
type SeedFile struct {
	Cookies []SeedEntry `yaml:"cookies"`
}

// Seed is a parsed seed entry, ready for Store.SetCookie.
type Seed struct {
	Identity Identity
	Cookie   Cookie
}

// LoadSeedYAML parses a YAML seed file. now anchors max_age.
func LoadSeedYAML(r io.Reader, now time.Time) ([]Seed, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed YAML: %w", err)
	}

	seeds := make([]Seed, 0, len(file.Cookies))
	for i, e := range file.Cookies {
		id, err := ParseIdentity(e.URL)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("seed entry %d: %w: empty name", i, ErrInvalidCookie)
		}

		c := Cookie{
			Name:     e.Name,
			Value:    e.Value,
			Domain:   e.Domain,
			Path:     e.Path,
			Secure:   e.Secure,
			HTTPOnly: e.HTTPOnly,
		}
		if e.MaxAge != 0 {
			c.Expires = now.Add(time.Duration(e.MaxAge) * time.Second)
		}
		seeds = append(seeds, Seed{Identity: id, Cookie: c})
	}
	return seeds, nil
}

// LoadSeedFile parses the YAML seed file at path.
func LoadSeedFile(path string, now time.Time) ([]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadSeedYAML(f, now)
}
