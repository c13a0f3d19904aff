package seat_manager

import (
	"errors"
	"math/rand"
)

var (
	ErrNotEnoughSeats        = errors.New("seat manager: no enough seats")
	ErrPlayerNotFound        = errors.New("seat manager: player not found")
	ErrInvalidPlayerID       = errors.New("seat manager: invalid player id")
	ErrDuplicatePlayers      = errors.New("seat manager: duplicate players detected")
	ErrUnableToInitPositions = errors.New("seat manager: unable to init positions")
	ErrMissingRandomSource   = errors.New("seat manager: missing random source")
)

type SeatManager interface {
	GetSeatID(playerID string) (int, error)
	AssignSeats(playerIDs []string) error
	RandomAssignSeats(playerIDs []string, r *rand.Rand) error
	RandomOccupiedSeatID(r *rand.Rand) (int, error)
	InitPositions(r *rand.Rand) (Positions, error)

	NextOccupiedSeatID(seatID int) int
	PreviousOccupiedSeatID(seatID int) int
	NextSeatID(seatID int, matcher func(playerID string) bool) int
	PreviousSeatID(seatID int, matcher func(playerID string) bool) int
	ListPlayerIDsFrom(seatID int) []string

	Seats() []string
	MaxSeat() int
	OccupiedSeatIDs() []int
	OccupiedCount() int
}

// Positions 一手牌開始時的位置
type Positions struct {
	DealerSeatID   int `json:"dealer_seat_id"`
	SBSeatID       int `json:"sb_seat_id"`
	BBSeatID       int `json:"bb_seat_id"`
	ActionOnSeatID int `json:"action_on_seat_id"`
}

func (p Positions) IsHU() bool {
	return p.DealerSeatID == p.SBSeatID
}

func NewSeatManager(maxSeats int) SeatManager {
	seats := make([]string, maxSeats)
	for i := 0; i < maxSeats; i++ {
		seats[i] = EmptySeat
	}

	return &seatManager{
		maxSeat: maxSeats,
		seats:   seats,
	}
}

// NewSeatManagerFromSeats wraps a copy of an existing seat map.
func NewSeatManagerFromSeats(seats []string) SeatManager {
	copied := make([]string, len(seats))
	copy(copied, seats)

	return &seatManager{
		maxSeat: len(seats),
		seats:   copied,
	}
}
