package randomizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/piece"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func deal(r engine.Randomizer, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.Next()
	}
	return out
}

func TestBagDealsFullSets(t *testing.T) {
	for _, copies := range []int{1, 2} {
		b := NewBag(7, copies)
		size := pool * copies
		for set := 0; set < 5; set++ {
			counts := make(map[int]int)
			for _, id := range deal(b, size) {
				counts[id]++
			}
			require.Len(t, counts, pool)
			for id, n := range counts {
				assert.Equal(t, copies, n, "copies=%d set=%d piece %s", copies, set, piece.Name(id))
			}
		}
	}
}

func TestHistoryFirstPiece(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		first := NewHistory(seed).Next()
		assert.NotContains(t, []int{piece.S, piece.Z, piece.O}, first, "seed %d", seed)
	}
}

func TestMemorylessRange(t *testing.T) {
	for _, id := range deal(NewMemoryless(1), 500) {
		assert.True(t, id >= 0 && id < pool, "Next() = %d, want a tetromino", id)
	}
}

func TestDeterministicSources(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.Name, func(t *testing.T) {
			a, err := registry.Create(info.Name, 99)
			require.NoError(t, err)
			b, err := registry.Create(info.Name, 99)
			require.NoError(t, err)
			assert.Equal(t, deal(a, 100), deal(b, 100))
		})
	}
}

func TestDefaultRegistered(t *testing.T) {
	assert.True(t, registry.Exists(Default))
	for _, name := range []string{"bag", "bag14", "memoryless", "history"} {
		assert.True(t, registry.Exists(name), "missing %s", name)
	}
}
