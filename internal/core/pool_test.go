package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAppendAndGetIndex(t *testing.T) {
	p := NewPool()
	i0 := p.Append("aa")
	i1 := p.Append("bb")
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)

	idx, err := p.GetIndex("bb")
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestPoolGetIndexNotFound(t *testing.T) {
	p := NewPool()
	_, err := p.GetIndex("missing")
	require.Error(t, err)
	kind, _ := KindOf(err)
	require.Equal(t, ErrCmNotFound, kind)
}

func TestPoolOutOfRangeAccess(t *testing.T) {
	p := NewPool()
	p.Append("aa")
	_, err := p.Get(5)
	require.Error(t, err)
	require.Error(t, p.Set(5, "cc"))
}

func TestPoolForEachRangeRejectsBadBounds(t *testing.T) {
	p := NewPool()
	p.Append("aa")
	require.Error(t, p.ForEachRange(0, 5, func(int, string) error { return nil }))
	require.Error(t, p.ForEachRange(1, 0, func(int, string) error { return nil }))
}
