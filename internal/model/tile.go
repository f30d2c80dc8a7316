package model

import "strconv"

// TileKind classifies a cell of the grid
type TileKind string

const (
	TileEmpty        TileKind = "empty"         // No mine among the 8 neighbours
	TileMineAdjacent TileKind = "mine_adjacent" // Count holds the neighbouring mines
	TileMine         TileKind = "mine"
)

// Tile is the fixed classification of a cell, decided at generation time
type Tile struct {
	Kind  TileKind
	Count uint8 // 1-8 for TileMineAdjacent, 0 otherwise
}

// EmptyTile returns a tile with no neighbouring mines
func EmptyTile() Tile {
	return Tile{Kind: TileEmpty}
}

// MineTile returns a mine
func MineTile() Tile {
	return Tile{Kind: TileMine}
}

// MineAdjacentTile returns a tile for the given neighbour count.
// A zero count collapses to an empty tile.
func MineAdjacentTile(count uint8) Tile {
	if count == 0 {
		return EmptyTile()
	}
	return Tile{Kind: TileMineAdjacent, Count: count}
}

// IsMine reports whether the tile is a mine
func (t Tile) IsMine() bool {
	return t.Kind == TileMine
}

// IsEmpty reports whether the tile has no neighbouring mines.
// Empty tiles are the only ones that propagate a reveal.
func (t Tile) IsEmpty() bool {
	return t.Kind == TileEmpty
}

// IsMineAdjacent reports whether the tile shows a neighbour count
func (t Tile) IsMineAdjacent() bool {
	return t.Kind == TileMineAdjacent
}

// Symbol returns the single character console form of the tile
func (t Tile) Symbol() string {
	switch t.Kind {
	case TileMine:
		return "*"
	case TileMineAdjacent:
		return strconv.Itoa(int(t.Count))
	default:
		return " "
	}
}
