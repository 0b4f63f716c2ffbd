// Package client is the WebSocket game client: the connection wrapper
// with typed send helpers, and the board geometry the server delegates
// to the caller.
package client

import (
	"fmt"
	"sort"
	"strings"
)

// Hex is an axial coordinate of a pointy-top hex.
type Hex struct {
	Q int
	R int
}

// Hexes lists the 19 board positions in row order, top to bottom. The
// index into this slice is the tile identifier used on the wire.
var Hexes = buildHexes()

const boardRadius = 2

func buildHexes() []Hex {
	var hexes []Hex
	for r := -boardRadius; r <= boardRadius; r++ {
		for q := -boardRadius; q <= boardRadius; q++ {
			if abs(q+r) <= boardRadius {
				hexes = append(hexes, Hex{Q: q, R: r})
			}
		}
	}
	return hexes
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var hexIndex = buildHexIndex()

func buildHexIndex() map[Hex]int {
	idx := make(map[Hex]int, len(Hexes))
	for i, h := range Hexes {
		idx[h] = i
	}
	return idx
}

// TileID resolves a hex coordinate to its tile identifier, or -1 when
// the coordinate is off the board.
func TileID(h Hex) int {
	id, ok := hexIndex[h]
	if !ok {
		return -1
	}
	return id
}

// Every corner of the grid is the north or south tip of exactly one
// hex (possibly off-board), which gives each vertex a canonical name.
type vertex struct {
	q, r  int
	south bool
}

func (v vertex) id() string {
	tip := "N"
	if v.south {
		tip = "S"
	}
	return fmt.Sprintf("%d,%d%s", v.q, v.r, tip)
}

func parseVertex(id string) (vertex, bool) {
	if len(id) < 4 {
		return vertex{}, false
	}
	tip := id[len(id)-1]
	if tip != 'N' && tip != 'S' {
		return vertex{}, false
	}
	var q, r int
	if _, err := fmt.Sscanf(id[:len(id)-1], "%d,%d", &q, &r); err != nil {
		return vertex{}, false
	}
	return vertex{q: q, r: r, south: tip == 'S'}, true
}

// corners returns the six vertices of a hex, clockwise from the north
// tip: north, upper right, lower right, south, lower left, upper left.
// The four side corners borrow the tips of neighboring hexes.
func corners(h Hex) [6]vertex {
	return [6]vertex{
		{q: h.Q, r: h.R, south: false},
		{q: h.Q + 1, r: h.R - 1, south: true},
		{q: h.Q, r: h.R + 1, south: false},
		{q: h.Q, r: h.R, south: true},
		{q: h.Q - 1, r: h.R + 1, south: false},
		{q: h.Q, r: h.R - 1, south: true},
	}
}

// touchingHexes returns the up to three hexes meeting at a vertex.
func touchingHexes(v vertex) [3]Hex {
	if !v.south {
		return [3]Hex{
			{Q: v.q, R: v.r},
			{Q: v.q, R: v.r - 1},
			{Q: v.q + 1, R: v.r - 1},
		}
	}
	return [3]Hex{
		{Q: v.q, R: v.r},
		{Q: v.q, R: v.r + 1},
		{Q: v.q - 1, R: v.r + 1},
	}
}

// adjacentVertices returns the three grid neighbors of a vertex.
func adjacentVertices(v vertex) [3]vertex {
	if !v.south {
		return [3]vertex{
			{q: v.q, r: v.r - 1, south: true},
			{q: v.q + 1, r: v.r - 1, south: true},
			{q: v.q + 1, r: v.r - 2, south: true},
		}
	}
	return [3]vertex{
		{q: v.q, r: v.r + 1, south: false},
		{q: v.q - 1, r: v.r + 1, south: false},
		{q: v.q - 1, r: v.r + 2, south: false},
	}
}

func onBoard(v vertex) bool {
	for _, h := range touchingHexes(v) {
		if _, ok := hexIndex[h]; ok {
			return true
		}
	}
	return false
}

// TileVertices returns the six vertex identifiers of a tile.
func TileVertices(tileID int) []string {
	if tileID < 0 || tileID >= len(Hexes) {
		return nil
	}
	cs := corners(Hexes[tileID])
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.id()
	}
	return ids
}

// VertexHexes returns the tile identifiers adjacent to a vertex, one to
// three of them. The server grants production along this list.
func VertexHexes(vertexID string) []int {
	v, ok := parseVertex(vertexID)
	if !ok {
		return nil
	}
	var ids []int
	for _, h := range touchingHexes(v) {
		if id, on := hexIndex[h]; on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// VertexNeighbors returns the adjacent on-board vertices. The server
// enforces the distance rule against this list.
func VertexNeighbors(vertexID string) []string {
	v, ok := parseVertex(vertexID)
	if !ok {
		return nil
	}
	var ids []string
	for _, n := range adjacentVertices(v) {
		if onBoard(n) {
			ids = append(ids, n.id())
		}
	}
	sort.Strings(ids)
	return ids
}

// ValidVertex reports whether the identifier names a vertex of the
// board.
func ValidVertex(vertexID string) bool {
	v, ok := parseVertex(vertexID)
	return ok && onBoard(v)
}

// EdgeID derives the canonical edge identifier from its two endpoint
// vertices, independent of their order.
func EdgeID(v1, v2 string) string {
	if v2 < v1 {
		v1, v2 = v2, v1
	}
	return v1 + "|" + v2
}

// AllVertices returns every vertex identifier of the board, sorted.
func AllVertices() []string {
	seen := make(map[string]bool)
	for _, h := range Hexes {
		for _, c := range corners(h) {
			seen[c.id()] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllEdges returns every edge identifier of the board, sorted.
func AllEdges() []string {
	seen := make(map[string]bool)
	for _, vid := range AllVertices() {
		for _, n := range VertexNeighbors(vid) {
			seen[EdgeID(vid, n)] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeVertices splits an edge identifier back into its endpoints.
func EdgeVertices(edgeID string) (string, string, bool) {
	v1, v2, ok := strings.Cut(edgeID, "|")
	return v1, v2, ok
}
