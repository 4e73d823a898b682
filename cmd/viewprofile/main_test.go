package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	require.Equal(t, 2*3*5, run(2, 3, 10))
}
