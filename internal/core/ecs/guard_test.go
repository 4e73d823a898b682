package ecs

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuarded(t *testing.T) {
	g := NewGuarded(NewWorld(Options{}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				err := g.Update(func(w *World) error {
					e := w.CreateEntity()
					return Attach(w, e, position{X: float64(j)})
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				g.Read(func(w *World) {
					n := Query1[position](w).Count()
					if n > w.Len() {
						t.Errorf("view saw %d entities, world has %d", n, w.Len())
					}
				})
			}
		}()
	}
	wg.Wait()

	g.Read(func(w *World) {
		require.Equal(t, 200, w.Len())
		require.Equal(t, 200, Query1[position](w).Count())
	})

	boom := errors.New("boom")
	require.ErrorIs(t, g.Update(func(*World) error { return boom }), boom)
}
