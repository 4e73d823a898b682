package event

import (
	"testing"

	"github.com/cubos/engine/internal/core/ecs"
	"github.com/stretchr/testify/require"
)

type marker struct{}

func TestWorldObserver(t *testing.T) {
	b := NewBus()
	w := ecs.NewWorld(ecs.Options{Name: "shard-0", Observer: NewWorldObserver(b, "shard-0")})

	var created, destroyed []ecs.EntityID
	var attached, detached []ecs.ComponentTypeID
	Subscribe(b, func(e EntityCreated) {
		require.Equal(t, "shard-0", e.World)
		created = append(created, e.Entity)
	})
	Subscribe(b, func(e EntityDestroyed) { destroyed = append(destroyed, e.Entity) })
	Subscribe(b, func(e ComponentAttached) { attached = append(attached, e.Component) })
	Subscribe(b, func(e ComponentDetached) { detached = append(detached, e.Component) })

	e := w.CreateEntity()
	require.NoError(t, ecs.Attach(w, e, marker{}))
	require.NoError(t, ecs.Detach[marker](w, e))
	require.NoError(t, w.DestroyEntity(e))

	b.SwapBuffers()
	require.Equal(t, 4, b.DispatchAll())

	ct, err := ecs.ComponentTypeOf[marker](w)
	require.NoError(t, err)
	require.Equal(t, []ecs.EntityID{e}, created)
	require.Equal(t, []ecs.EntityID{e}, destroyed)
	require.Equal(t, []ecs.ComponentTypeID{ct}, attached)
	require.Equal(t, []ecs.ComponentTypeID{ct}, detached)
}
