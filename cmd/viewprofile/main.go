// viewprofile exercises entity churn and view iteration under pkg/profile.
//
// Profiling:
// go build ./cmd/viewprofile
// ./viewprofile -mode cpu
// go tool pprof -http=":8000" ./viewprofile cpu.pprof
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/core/ecs"
	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu or mem")
	rounds := flag.Int("rounds", 20, "worlds to build")
	iters := flag.Int("iters", 1000, "create/iterate/destroy cycles per world")
	entities := flag.Int("entities", 1000, "entities per cycle")
	flag.Parse()

	var opt func(*profile.Profile)
	switch *mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	visited := run(*rounds, *iters, *entities)
	p.Stop()
	fmt.Printf("visited %d entities\n", visited)
}

func run(rounds, iters, numEntities int) int {
	visited := 0
	for range rounds {
		w := ecs.NewWorld(ecs.Options{InitialEntities: numEntities})
		query := ecs.Query2[component.Position, component.Velocity](w)

		for range iters {
			for i, e := range w.CreateEntities(numEntities) {
				_ = ecs.Attach(w, e, component.Position{})
				if i%2 == 0 {
					_ = ecs.Attach(w, e, component.Velocity{DX: 1, DY: 1})
				}
			}
			ecs.Each2(w, func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
				p.X += v.DX
				p.Y += v.DY
			})
			it := query.Iter()
			for it.Next() {
				w.MarkForDestruction(it.Entity())
				visited++
			}
			w.FlushDestroyQueue()
			w.Clear()
		}
	}
	return visited
}
