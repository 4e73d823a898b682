package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ S string }

func TestBus(t *testing.T) {
	t.Run("events are visible one swap later", func(t *testing.T) {
		b := NewBus()
		var got []int
		Subscribe(b, func(p ping) { got = append(got, p.N) })

		Emit(b, ping{1})
		Emit(b, ping{2})
		require.Equal(t, 2, b.Pending())
		require.Equal(t, 0, b.DispatchAll(), "front is empty before the swap")
		require.Empty(t, got)

		b.SwapBuffers()
		require.Equal(t, 0, b.Pending())
		require.Equal(t, 2, b.DispatchAll())
		require.Equal(t, []int{1, 2}, got)

		b.SwapBuffers()
		require.Equal(t, 0, b.DispatchAll(), "events are delivered once")
		require.Equal(t, []int{1, 2}, got)
	})

	t.Run("types dispatch in first-emit order", func(t *testing.T) {
		b := NewBus()
		var trace []string
		Subscribe(b, func(p pong) { trace = append(trace, "pong "+p.S) })
		Subscribe(b, func(p ping) { trace = append(trace, "ping") })

		Emit(b, pong{"a"})
		Emit(b, ping{})
		Emit(b, pong{"b"})
		b.SwapBuffers()
		b.DispatchAll()
		require.Equal(t, []string{"pong a", "pong b", "ping"}, trace)
	})

	t.Run("multiple handlers and unhandled types", func(t *testing.T) {
		b := NewBus()
		calls := 0
		Subscribe(b, func(ping) { calls++ })
		Subscribe(b, func(ping) { calls++ })

		Emit(b, ping{})
		Emit(b, pong{})
		b.SwapBuffers()
		require.Equal(t, 2, b.DispatchAll())
		require.Equal(t, 2, calls)
	})
}
