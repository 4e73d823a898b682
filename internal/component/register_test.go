package component

import (
	"reflect"
	"testing"

	"github.com/cubos/engine/internal/core/ecs"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := ecs.NewRegistry(0)
	require.NoError(t, Register(r))
	require.Equal(t, ecs.ComponentTypeID(0), ecs.MustTypeOf[Position](r))
	require.Equal(t, ecs.ComponentTypeID(3), ecs.MustTypeOf[Label](r))

	reserved := ecs.NewRegistry(0)
	require.NoError(t, reserved.Reserve(ecs.TypeName(reflect.TypeFor[Label]())))
	require.NoError(t, Register(reserved))
	require.Equal(t, ecs.ComponentTypeID(0), ecs.MustTypeOf[Label](reserved))
	require.Equal(t, ecs.ComponentTypeID(1), ecs.MustTypeOf[Position](reserved))
	require.Equal(t, 4, reserved.Len())
}

func TestRegisterCapacity(t *testing.T) {
	r := ecs.NewRegistry(64)
	for i := 0; i < 62; i++ {
		_, err := r.IDFor(reflect.ArrayOf(i, reflect.TypeFor[byte]()))
		require.NoError(t, err)
	}
	require.ErrorIs(t, Register(r), ecs.ErrCapacityExceeded)
}
