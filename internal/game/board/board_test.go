package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateComposition(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		tiles, robber, deck := Generate(rng)

		require.Len(t, tiles, NumTiles)

		typeCount := map[Resource]int{}
		numberCount := map[int]int{}
		for i, tile := range tiles {
			assert.Equal(t, i, tile.ID)
			typeCount[tile.Type]++
			if tile.Type == Desert {
				assert.Zero(t, tile.Number, "desert must not carry a number")
			} else {
				numberCount[tile.Number]++
			}
		}

		assert.Equal(t, map[Resource]int{
			Wood: 4, Brick: 3, Sheep: 4, Wheat: 4, Ore: 3, Desert: 1,
		}, typeCount, "seed %d", seed)

		assert.Equal(t, map[int]int{
			2: 1, 3: 2, 4: 2, 5: 2, 6: 2, 8: 2, 9: 2, 10: 2, 11: 2, 12: 1,
		}, numberCount, "seed %d", seed)

		// Robber starts on the desert.
		require.GreaterOrEqual(t, robber, 0)
		require.Less(t, robber, NumTiles)
		assert.Equal(t, Desert, tiles[robber].Type)

		cardCount := map[DevCard]int{}
		for _, c := range deck {
			cardCount[c]++
		}
		assert.Equal(t, map[DevCard]int{Knight: 10, Point: 5, Progress: 5}, cardCount)
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	a, robberA, deckA := Generate(rand.New(rand.NewSource(7)))
	b, robberB, deckB := Generate(rand.New(rand.NewSource(7)))

	assert.Equal(t, a, b)
	assert.Equal(t, robberA, robberB)
	assert.Equal(t, deckA, deckB)
}

func TestGenerateShufflesBetweenSeeds(t *testing.T) {
	a, _, _ := Generate(rand.New(rand.NewSource(1)))
	b, _, _ := Generate(rand.New(rand.NewSource(2)))
	assert.NotEqual(t, a, b)
}

func TestRandomResource(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[Resource]bool{}
	for i := 0; i < 200; i++ {
		r := RandomResource(rng)
		assert.True(t, r.Valid())
		seen[r] = true
	}
	assert.Len(t, seen, 5, "all five kinds should be drawable")
}

func TestResourceValid(t *testing.T) {
	assert.True(t, Wood.Valid())
	assert.False(t, Desert.Valid())
	assert.False(t, Resource("GOLD").Valid())
}
