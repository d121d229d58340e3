package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, width, height int, opts ...Option) *Board {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return NewBoard(width, height, opts...)
}

func mustAdd(t *testing.T, b *Board, entities ...*Entity) {
	t.Helper()
	for _, e := range entities {
		require.NoError(t, b.Add(e))
	}
}

// checkInvariants verifies the grid index and the entity list agree, and the
// hostile set is exactly the live hostiles.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	entities := b.Entities()
	require.Equal(t, len(entities), b.Grid().Len(), "grid and entity list disagree on population")
	require.Len(t, b.byID, len(entities), "id index and entity list disagree on population")

	hostiles := 0
	for _, e := range entities {
		occupant, ok := b.Grid().Occupant(e.Pos)
		require.True(t, ok, "%s at %v missing from grid", e.Kind, e.Pos)
		require.Same(t, e, occupant, "%s at %v shadowed by %s", e.Kind, e.Pos, occupant.Kind)
		require.True(t, b.Grid().InBounds(e.Pos))
		require.True(t, e.OnBoard())
		byID, ok := b.Lookup(e.ID)
		require.True(t, ok, "%s at %v missing from id index", e.Kind, e.Pos)
		require.Same(t, e, byID)
		if e.Kind.IsHostile() {
			hostiles++
		}
	}
	require.Equal(t, hostiles, b.HostileCount())
}

func requireContractPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a contract panic")
		_, ok := r.(*ContractError)
		require.True(t, ok, "panic value %v is not a *ContractError", r)
	}()
	fn()
}
