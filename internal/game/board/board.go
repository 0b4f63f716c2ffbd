// Package board generates the hex board, the dice-number layout and the
// development card deck for one game.
package board

import "math/rand"

// Resource identifies one of the five producing resources. The DESERT
// value appears only as a tile type, never in player holdings.
type Resource string

const (
	Wood   Resource = "WOOD"
	Brick  Resource = "BRICK"
	Sheep  Resource = "SHEEP"
	Wheat  Resource = "WHEAT"
	Ore    Resource = "ORE"
	Desert Resource = "DESERT"
)

// Resources lists the producing resource kinds in a fixed order.
var Resources = [5]Resource{Wood, Brick, Sheep, Wheat, Ore}

// Valid reports whether r names a producing resource.
func (r Resource) Valid() bool {
	for _, k := range Resources {
		if r == k {
			return true
		}
	}
	return false
}

// DevCard identifies a development card kind.
type DevCard string

const (
	Knight   DevCard = "KNIGHT"
	Point    DevCard = "POINT"
	Progress DevCard = "PROGRESS"
)

// Tile is one hex of the board. Number is 0 for the desert tile.
type Tile struct {
	ID     int      `json:"id"`
	Type   Resource `json:"type"`
	Number int      `json:"number,omitempty"`
}

// NumTiles is the size of the standard board.
const NumTiles = 19

// tileTypes is the fixed resource multiset of the board.
var tileTypes = [NumTiles]Resource{
	Wood, Wood, Wood, Wood,
	Brick, Brick, Brick,
	Sheep, Sheep, Sheep, Sheep,
	Wheat, Wheat, Wheat, Wheat,
	Ore, Ore, Ore,
	Desert,
}

// tileNumbers is the fixed dice-number multiset, assigned in generation
// order to non-desert tiles. There is no 7.
var tileNumbers = [NumTiles - 1]int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// deckComposition is the fixed development deck: 10 knights, 5 victory
// points, 5 progress cards.
var deckComposition = []struct {
	card  DevCard
	count int
}{
	{Knight, 10},
	{Point, 5},
	{Progress, 5},
}

// Generate builds a randomized board: 19 tiles with uniformly permuted
// types and numbers, the robber on the desert tile, and a shuffled
// development deck. The rand source is injected so tests can be
// deterministic.
func Generate(rng *rand.Rand) (tiles []Tile, robberTile int, deck []DevCard) {
	types := tileTypes
	rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})

	numbers := tileNumbers
	rng.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	tiles = make([]Tile, NumTiles)
	numIdx := 0
	for i, typ := range types {
		tiles[i] = Tile{ID: i, Type: typ}
		if typ == Desert {
			robberTile = i
			continue
		}
		tiles[i].Number = numbers[numIdx]
		numIdx++
	}

	for _, c := range deckComposition {
		for i := 0; i < c.count; i++ {
			deck = append(deck, c.card)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return tiles, robberTile, deck
}

// RandomResource draws one producing resource uniformly at random.
func RandomResource(rng *rand.Rand) Resource {
	return Resources[rng.Intn(len(Resources))]
}
