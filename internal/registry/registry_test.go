package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
)

type constant int

func (c constant) Next() int { return int(c) }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-constant", "Constant", func(seed int64) engine.Randomizer { return constant(seed) })

	require.True(t, Exists("test-constant"))
	r, err := Create("test-constant", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Next())

	found := false
	for _, info := range List() {
		if info.Name == "test-constant" {
			found = true
			assert.Equal(t, "Constant", info.Title)
		}
	}
	assert.True(t, found, "List() is missing test-constant")

	assert.Panics(t, func() {
		Register("test-constant", "again", func(int64) engine.Randomizer { return constant(0) })
	})
}

func TestUnknownName(t *testing.T) {
	assert.False(t, Exists("no-such-source"))
	_, err := Create("no-such-source", 1)
	assert.True(t, errors.Is(err, ErrUnknown), "Create error = %v, want ErrUnknown", err)
	_, err = Lookup("no-such-source")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestListSorted(t *testing.T) {
	Register("test-b", "B", func(int64) engine.Randomizer { return constant(0) })
	Register("test-a", "A", func(int64) engine.Randomizer { return constant(0) })
	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}
