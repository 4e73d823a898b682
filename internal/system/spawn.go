package system

import (
	"fmt"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/core/ecs"
	"github.com/cubos/engine/internal/data"
)

// SpawnScene creates every entity of scene in w and returns their ids in
// spawn order. Must not be called while w is being iterated.
func SpawnScene(w *ecs.World, scene *data.Scene) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, scene.Total())
	for _, g := range scene.Groups {
		for i := 0; i < g.Count; i++ {
			id := w.CreateEntity()
			if err := spawnOne(w, id, &g, i); err != nil {
				return ids, fmt.Errorf("spawn %s[%d]: %w", g.Name, i, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func spawnOne(w *ecs.World, id ecs.EntityID, g *data.SpawnGroup, i int) error {
	if g.Position != nil {
		p := component.Position{
			X: g.Position.X + float64(i)*g.Step.X,
			Y: g.Position.Y + float64(i)*g.Step.Y,
		}
		if err := ecs.Attach(w, id, p); err != nil {
			return err
		}
	}
	if g.Velocity != nil {
		if err := ecs.Attach(w, id, *g.Velocity); err != nil {
			return err
		}
	}
	if g.Lifetime > 0 {
		if err := ecs.Attach(w, id, component.Lifetime{Remaining: g.Lifetime}); err != nil {
			return err
		}
	}
	if g.Label != "" {
		name := fmt.Sprintf("%s-%d", g.Label, i)
		if err := ecs.Attach(w, id, component.Label{Name: name, Group: g.Name}); err != nil {
			return err
		}
	}
	return nil
}
