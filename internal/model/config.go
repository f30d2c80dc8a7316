package model

// Difficulty names a preset board configuration
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
	DifficultyClassic      Difficulty = "classic"
)

// MaxDimension bounds each side of a board
const MaxDimension = 256

// GameConfig is accepted at session start
type GameConfig struct {
	Width           uint16
	Height          uint16
	MineCount       uint16
	SafeFirstReveal bool    // Reveal an empty tile before the first move
	Seed            *uint64 // Reproducible layout when set
}

// DefaultGameConfig returns the classic 15x15 board with 30 mines
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Width:     15,
		Height:    15,
		MineCount: 30,
	}
}

// ConfigForDifficulty returns the preset for a difficulty
func ConfigForDifficulty(d Difficulty) (GameConfig, error) {
	switch d {
	case DifficultyBeginner:
		return GameConfig{Width: 9, Height: 9, MineCount: 10}, nil
	case DifficultyIntermediate:
		return GameConfig{Width: 16, Height: 16, MineCount: 40}, nil
	case DifficultyExpert:
		return GameConfig{Width: 30, Height: 16, MineCount: 99}, nil
	case DifficultyClassic:
		return DefaultGameConfig(), nil
	default:
		return GameConfig{}, ErrInvalidDifficulty
	}
}

// ValidDifficulties returns all preset names
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyExpert, DifficultyClassic}
}

// Validate rejects configurations no layout can satisfy
func (c GameConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return ErrInvalidDimensions
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		return ErrBoardTooLarge
	}
	if int(c.MineCount) >= int(c.Width)*int(c.Height) {
		return ErrTooManyMines
	}
	return nil
}

// CellCount returns width*height
func (c GameConfig) CellCount() int {
	return int(c.Width) * int(c.Height)
}
