package model

import "errors"

// Common errors used across the application
var (
	// Configuration errors
	ErrInvalidDimensions = errors.New("board dimensions must be non-zero")
	ErrBoardTooLarge     = errors.New("board dimensions exceed the maximum")
	ErrTooManyMines      = errors.New("mine count must be less than the number of cells")
	ErrInvalidDifficulty = errors.New("unknown difficulty")
	ErrDuplicateMine     = errors.New("mine placed twice on the same cell")

	// Position errors
	ErrInvalidPosition   = errors.New("invalid board position")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidButton     = errors.New("invalid pointer button")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameFinished = errors.New("game is already finished")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrNoMoveAvailable = errors.New("no move available")

	// Board invariant violations
	ErrMarkedNotCovered = errors.New("marked cell is not covered")
	ErrCoveredOverflow  = errors.New("more covered cells than the grid holds")
	ErrCoveredOffGrid   = errors.New("covered cell has no tile")
)
