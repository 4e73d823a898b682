package component

// Position is a point in world space.
// Pure data, zero methods. Systems own all mutation.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Velocity is applied to Position by MovementSystem, in units per second.
type Velocity struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}
