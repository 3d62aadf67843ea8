package probe

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jon1enforce/sslprobe/configs"
)

// Manifest is the parsed probe manifest: the reference symbol list the
// Bitmessage client needs and the candidate library paths to scan.
// Both are fixed at build time (configs/probe.yaml).
type Manifest struct {
	Symbols    SymbolGroups `yaml:"symbols"`
	Candidates []string     `yaml:"candidates"`
}

// SymbolGroups holds the reference symbols grouped by how the client uses
// them. Scanning flattens the groups in declaration order.
type SymbolGroups struct {
	SSL    []string `yaml:"ssl"`
	Crypto []string `yaml:"crypto"`
	ECC    []string `yaml:"ecc"`
	Digest []string `yaml:"digest"`
	Key    []string `yaml:"key"`
}

// Flatten returns all reference symbols as one ordered list.
func (g SymbolGroups) Flatten() []string {
	out := make([]string, 0, len(g.SSL)+len(g.Crypto)+len(g.ECC)+len(g.Digest)+len(g.Key))
	out = append(out, g.SSL...)
	out = append(out, g.Crypto...)
	out = append(out, g.ECC...)
	out = append(out, g.Digest...)
	out = append(out, g.Key...)
	return out
}

// LoadManifest parses the embedded probe manifest.
func LoadManifest() (*Manifest, error) {
	return ParseManifest([]byte(configs.ProbeManifest))
}

// ParseManifest parses a probe manifest from YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("probe: parse manifest: %w", err)
	}
	if len(m.Symbols.Flatten()) == 0 {
		return nil, errors.New("probe: manifest has no reference symbols")
	}
	if len(m.Candidates) == 0 {
		return nil, errors.New("probe: manifest has no candidate paths")
	}
	return &m, nil
}
