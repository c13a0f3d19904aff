package seat_manager

import (
	"math/rand"
)

func (sm *seatManager) validateNewPlayers(playerIDs []string) error {
	if len(sm.getEmptySeatIDs()) < len(playerIDs) {
		return ErrNotEnoughSeats
	}

	exists := make(map[string]bool)
	for _, seatPlayerID := range sm.seats {
		if seatPlayerID != EmptySeat {
			exists[seatPlayerID] = true
		}
	}

	for _, playerID := range playerIDs {
		if playerID == EmptySeat {
			return ErrInvalidPlayerID
		}

		if _, exist := exists[playerID]; exist {
			return ErrDuplicatePlayers
		}
		exists[playerID] = true
	}

	return nil
}

func (sm *seatManager) randomSeatIDs(count int, r *rand.Rand) ([]int, error) {
	emptySeatIDs := sm.getEmptySeatIDs()

	if len(emptySeatIDs) < count {
		return nil, ErrNotEnoughSeats
	}

	r.Shuffle(len(emptySeatIDs), func(i, j int) {
		emptySeatIDs[i], emptySeatIDs[j] = emptySeatIDs[j], emptySeatIDs[i]
	})

	return emptySeatIDs[:count], nil
}

func (sm *seatManager) getEmptySeatIDs() []int {
	emptySeatIDs := make([]int, 0)
	for seatID, seatPlayerID := range sm.seats {
		if seatPlayerID == EmptySeat {
			emptySeatIDs = append(emptySeatIDs, seatID)
		}
	}
	return emptySeatIDs
}

func (sm *seatManager) getOccupiedSeatIDs() []int {
	seatIDs := make([]int, 0)
	for seatID, seatPlayerID := range sm.seats {
		if seatPlayerID != EmptySeat {
			seatIDs = append(seatIDs, seatID)
		}
	}
	return seatIDs
}

func (sm *seatManager) isMatched(seatID int, matcher func(playerID string) bool) bool {
	playerID := sm.seats[seatID]
	return playerID != EmptySeat && matcher(playerID)
}
