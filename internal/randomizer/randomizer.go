// Package randomizer provides seeded next-piece sources for the engine.
// Every source deals the seven tetrominoes only.
package randomizer

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/piece"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Default is the name the CLI uses when none is given.
const Default = "bag"

const (
	pool         = piece.I1 // IDs below this are tetrominoes
	historySize  = 4
	historyRolls = 6
)

func init() {
	registry.Register("bag", "7-piece bag", func(seed int64) engine.Randomizer { return NewBag(seed, 1) })
	registry.Register("bag14", "14-piece bag", func(seed int64) engine.Randomizer { return NewBag(seed, 2) })
	registry.Register("memoryless", "Memoryless", func(seed int64) engine.Randomizer { return NewMemoryless(seed) })
	registry.Register("history", "4-history, 6 rolls", func(seed int64) engine.Randomizer { return NewHistory(seed) })
}

// Memoryless picks every piece independently.
type Memoryless struct {
	rng *rand.Rand
}

func NewMemoryless(seed int64) *Memoryless {
	return &Memoryless{rng: rand.New(rand.NewSource(seed))}
}

func (m *Memoryless) Next() int { return m.rng.Intn(pool) }

// Bag deals shuffled copies of the full set, copies sets at a time.
type Bag struct {
	rng    *rand.Rand
	copies int
	bag    []int
}

func NewBag(seed int64, copies int) *Bag {
	if copies < 1 {
		copies = 1
	}
	return &Bag{rng: rand.New(rand.NewSource(seed)), copies: copies}
}

func (b *Bag) Next() int {
	if len(b.bag) == 0 {
		b.refill()
	}
	id := b.bag[0]
	b.bag = b.bag[1:]
	return id
}

func (b *Bag) refill() {
	b.bag = make([]int, 0, pool*b.copies)
	for c := 0; c < b.copies; c++ {
		for id := 0; id < pool; id++ {
			b.bag = append(b.bag, id)
		}
	}
	b.rng.Shuffle(len(b.bag), func(i, j int) {
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	})
}

// History rerolls pieces found in the last four dealt, up to six times. The
// first piece is never S, Z or O.
type History struct {
	rng     *rand.Rand
	history [historySize]int
	first   bool
}

func NewHistory(seed int64) *History {
	return &History{
		rng:     rand.New(rand.NewSource(seed)),
		history: [historySize]int{piece.Z, piece.S, piece.Z, piece.S},
		first:   true,
	}
}

func (h *History) Next() int {
	var id int
	if h.first {
		h.first = false
		starts := [...]int{piece.I, piece.L, piece.T, piece.J}
		id = starts[h.rng.Intn(len(starts))]
	} else {
		for roll := 0; roll < historyRolls; roll++ {
			id = h.rng.Intn(pool)
			if !h.recent(id) {
				break
			}
		}
	}
	copy(h.history[:], h.history[1:])
	h.history[historySize-1] = id
	return id
}

func (h *History) recent(id int) bool {
	for _, r := range h.history {
		if r == id {
			return true
		}
	}
	return false
}
