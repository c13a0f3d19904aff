package seat_manager

import (
	"math/rand"
)

type seatManager struct {
	maxSeat int
	seats   []string // index: seat_id (from 0 to MaxSeat - 1), value: player id (EmptySeat by default)
}

func (sm *seatManager) GetSeatID(playerID string) (int, error) {
	for seatID, seatPlayerID := range sm.seats {
		if seatPlayerID != EmptySeat && seatPlayerID == playerID {
			return seatID, nil
		}
	}
	return UnsetSeatID, ErrPlayerNotFound
}

// AssignSeats 依序將玩家安排至空位
func (sm *seatManager) AssignSeats(playerIDs []string) error {
	if err := sm.validateNewPlayers(playerIDs); err != nil {
		return err
	}

	emptySeatIDs := sm.getEmptySeatIDs()
	for i, playerID := range playerIDs {
		sm.seats[emptySeatIDs[i]] = playerID
	}

	return nil
}

// RandomAssignSeats 隨機將玩家安排至空位
func (sm *seatManager) RandomAssignSeats(playerIDs []string, r *rand.Rand) error {
	if r == nil {
		return ErrMissingRandomSource
	}

	if err := sm.validateNewPlayers(playerIDs); err != nil {
		return err
	}

	seatIDs, err := sm.randomSeatIDs(len(playerIDs), r)
	if err != nil {
		return err
	}

	for i, playerID := range playerIDs {
		sm.seats[seatIDs[i]] = playerID
	}

	return nil
}

// RandomOccupiedSeatID draws seat ids uniformly and retries until it lands on an occupied seat.
func (sm *seatManager) RandomOccupiedSeatID(r *rand.Rand) (int, error) {
	if r == nil {
		return UnsetSeatID, ErrMissingRandomSource
	}

	if sm.OccupiedCount() == 0 {
		return UnsetSeatID, ErrNotEnoughSeats
	}

	for {
		seatID := r.Intn(sm.maxSeat)
		if sm.seats[seatID] != EmptySeat {
			return seatID, nil
		}
	}
}

/*
InitPositions 決定一手牌的 Dealer、SB、BB 與第一位行動玩家
  - 隨機挑選一個有人的座位當作 Dealer
  - 2 人: Dealer 同時為 SB, 另一位為 BB
  - 超過 2 人: Dealer 下家為 SB, SB 下家為 BB
  - BB 下家為第一位行動玩家
*/
func (sm *seatManager) InitPositions(r *rand.Rand) (Positions, error) {
	positions := Positions{
		DealerSeatID:   UnsetSeatID,
		SBSeatID:       UnsetSeatID,
		BBSeatID:       UnsetSeatID,
		ActionOnSeatID: UnsetSeatID,
	}

	occupiedCount := sm.OccupiedCount()
	if occupiedCount < 2 {
		return positions, ErrUnableToInitPositions
	}

	dealerSeatID, err := sm.RandomOccupiedSeatID(r)
	if err != nil {
		return positions, err
	}
	positions.DealerSeatID = dealerSeatID

	if occupiedCount == 2 {
		positions.SBSeatID = dealerSeatID
	} else {
		positions.SBSeatID = sm.NextOccupiedSeatID(dealerSeatID)
	}
	positions.BBSeatID = sm.NextOccupiedSeatID(positions.SBSeatID)
	positions.ActionOnSeatID = sm.NextOccupiedSeatID(positions.BBSeatID)

	return positions, nil
}

func (sm *seatManager) NextOccupiedSeatID(seatID int) int {
	return sm.NextSeatID(seatID, func(string) bool { return true })
}

func (sm *seatManager) PreviousOccupiedSeatID(seatID int) int {
	return sm.PreviousSeatID(seatID, func(string) bool { return true })
}

// NextSeatID returns the first occupied seat strictly after seatID, wrapping around, whose player matches.
func (sm *seatManager) NextSeatID(seatID int, matcher func(playerID string) bool) int {
	for i := 1; i < sm.maxSeat; i++ {
		targetSeatID := (seatID + i) % sm.maxSeat
		if sm.isMatched(targetSeatID, matcher) {
			return targetSeatID
		}
	}
	return UnsetSeatID
}

// PreviousSeatID is NextSeatID walking the table backward.
func (sm *seatManager) PreviousSeatID(seatID int, matcher func(playerID string) bool) int {
	for i := 1; i < sm.maxSeat; i++ {
		targetSeatID := (seatID + sm.maxSeat - i) % sm.maxSeat
		if sm.isMatched(targetSeatID, matcher) {
			return targetSeatID
		}
	}
	return UnsetSeatID
}

// ListPlayerIDsFrom lists seated players starting at seatID (inclusive) in rotation order.
func (sm *seatManager) ListPlayerIDsFrom(seatID int) []string {
	playerIDs := make([]string, 0)
	if sm.maxSeat == 0 {
		return playerIDs
	}

	for i := 0; i < sm.maxSeat; i++ {
		targetSeatID := (seatID + i) % sm.maxSeat
		if sm.seats[targetSeatID] != EmptySeat {
			playerIDs = append(playerIDs, sm.seats[targetSeatID])
		}
	}
	return playerIDs
}

func (sm *seatManager) Seats() []string {
	seats := make([]string, len(sm.seats))
	copy(seats, sm.seats)
	return seats
}

func (sm *seatManager) MaxSeat() int {
	return sm.maxSeat
}

func (sm *seatManager) OccupiedSeatIDs() []int {
	return sm.getOccupiedSeatIDs()
}

func (sm *seatManager) OccupiedCount() int {
	return len(sm.getOccupiedSeatIDs())
}
