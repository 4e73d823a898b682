package data

import (
	"fmt"
	"os"
	"time"

	"github.com/cubos/engine/internal/component"
	"gopkg.in/yaml.v3"
)

// SpawnGroup spawns Count entities. Optional components are attached only
// when present. Entity i of the group starts at Position + i*Step.
type SpawnGroup struct {
	Name     string              `yaml:"name"`
	Count    int                 `yaml:"count"`
	Position *component.Position `yaml:"position"`
	Step     component.Position  `yaml:"step"`
	Velocity *component.Velocity `yaml:"velocity"`
	Lifetime time.Duration       `yaml:"lifetime"`
	Label    string              `yaml:"label"`
}

// Scene is a list of spawn groups loaded from a YAML file.
type Scene struct {
	Name   string       `yaml:"name"`
	Groups []SpawnGroup `yaml:"groups"`
}

// LoadScene loads a scene file such as scenes/demo.yaml.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(raw)
}

func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i, g := range s.Groups {
		if g.Count < 0 {
			return nil, fmt.Errorf("scene %q group %d (%s): negative count %d", s.Name, i, g.Name, g.Count)
		}
		if g.Lifetime < 0 {
			return nil, fmt.Errorf("scene %q group %d (%s): negative lifetime", s.Name, i, g.Name)
		}
	}
	return &s, nil
}

// Total returns the number of entities the scene spawns.
func (s *Scene) Total() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}
