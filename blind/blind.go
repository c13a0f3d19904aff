package blind

import (
	"errors"
)

var (
	ErrEmptyLevels  = errors.New("blind: no blind levels")
	ErrInvalidLevel = errors.New("blind: invalid blind level")
)

type BlindLevel struct {
	Level int   `json:"level"`
	SB    int64 `json:"sb"`
	BB    int64 `json:"bb"`
	Hands int   `json:"hands"` // 此級別持續手數, 0 表示不再升盲
}

type Blind struct {
	levels []BlindLevel
}

func NewBlind(levels []BlindLevel) (Blind, error) {
	if len(levels) == 0 {
		return Blind{}, ErrEmptyLevels
	}

	for _, level := range levels {
		if level.SB <= 0 || level.BB < level.SB || level.Hands < 0 {
			return Blind{}, ErrInvalidLevel
		}
	}

	copied := make([]BlindLevel, len(levels))
	copy(copied, levels)
	return Blind{levels: copied}, nil
}

// NewFixedBlind never raises the blinds.
func NewFixedBlind(sb, bb int64) (Blind, error) {
	return NewBlind([]BlindLevel{{Level: 1, SB: sb, BB: bb}})
}

// CurrentLevel 依已完成手數找出目前盲注級別
func (blind Blind) CurrentLevel(handsPlayed int) BlindLevel {
	remaining := handsPlayed
	for _, level := range blind.levels {
		if level.Hands == 0 || remaining < level.Hands {
			return level
		}
		remaining -= level.Hands
	}
	return blind.levels[len(blind.levels)-1]
}

func (blind Blind) Levels() []BlindLevel {
	copied := make([]BlindLevel, len(blind.levels))
	copy(copied, blind.levels)
	return copied
}
