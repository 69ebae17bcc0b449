package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterLookupDestroyFacade(t *testing.T) {
	f := NewFacade(2, 2)
	handle := RegisterFacade(f)

	got, ok := LookupFacade(handle)
	require.True(t, ok)
	require.Same(t, f, got)

	DestroyFacade(handle)
	_, ok = LookupFacade(handle)
	require.False(t, ok)
}

func TestDistinctFacadesGetDistinctHandles(t *testing.T) {
	h1 := RegisterFacade(NewFacade(2, 2))
	h2 := RegisterFacade(NewFacade(1, 1))
	require.NotEqual(t, h1, h2)
	DestroyFacade(h1)
	DestroyFacade(h2)
}
