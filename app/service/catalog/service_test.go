package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(nil)
	require.NoError(t, err)

	return svc
}

func TestLookupKnownSymbols(t *testing.T) {
	svc := newService(t)

	for _, symbol := range svc.Symbols() {
		first, ok := svc.Lookup(symbol)
		require.True(t, ok, "symbol %s", symbol)

		second, ok := svc.Lookup(symbol)
		require.True(t, ok)
		require.Equal(t, first, second)
	}
}

func TestLookupPinnedIndexes(t *testing.T) {
	svc := newService(t)

	index, ok := svc.Lookup("ETH")
	require.True(t, ok)
	require.Equal(t, 9, index)

	index, ok = svc.Lookup("WBTC")
	require.True(t, ok)
	require.Equal(t, 0, index)

	index, ok = svc.Lookup("FRXETH")
	require.True(t, ok)
	require.Equal(t, 29, index)
}

func TestLookupUnknownSymbol(t *testing.T) {
	svc := newService(t)

	_, ok := svc.Lookup("FOO")
	require.False(t, ok)

	// matching is case-sensitive
	_, ok = svc.Lookup("eth")
	require.False(t, ok)

	_, ok = svc.Lookup("")
	require.False(t, ok)
}

func TestIndexesAreUnique(t *testing.T) {
	svc := newService(t)

	seen := make(map[int]string)

	for _, symbol := range svc.Symbols() {
		index, ok := svc.Lookup(symbol)
		require.True(t, ok)
		require.GreaterOrEqual(t, index, 0)

		other, dup := seen[index]
		require.False(t, dup, "index %d shared by %s and %s", index, symbol, other)
		seen[index] = symbol
	}

	require.Len(t, seen, 30)
}

func TestSymbolsOrderIsStable(t *testing.T) {
	svc := newService(t)

	first := svc.Symbols()
	second := svc.Symbols()
	require.Equal(t, first, second)
	require.Equal(t, "WBTC", first[0])

	// callers cannot corrupt the catalog through the returned slice
	first[0] = "HACKED"
	require.Equal(t, "WBTC", svc.Symbols()[0])
}
