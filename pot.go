package holdemtable

import (
	"sort"

	"github.com/thoas/go-funk"
)

/*
calculatePots 依投入籌碼計算主池與邊池
  - 以未棄牌玩家的累計投入作為分池級距
  - 每個池的參與者為投入達到該級距的未棄牌玩家
  - 棄牌玩家超過最高級距的投入併入最後一個池
*/
func (h Hand) calculatePots() []Pot {
	levels := make([]int64, 0)
	for _, playerID := range h.PlayersStillInHand {
		contribution := h.Contributions[playerID]
		if contribution > 0 && !funk.Contains(levels, contribution) {
			levels = append(levels, contribution)
		}
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i] < levels[j]
	})

	playerIDs := h.contributorsInSeatOrder()

	if len(levels) == 0 {
		total := int64(0)
		for _, playerID := range playerIDs {
			total += h.Contributions[playerID]
		}
		return []Pot{{Amount: total, EligiblePlayers: append([]string{}, h.PlayersStillInHand...)}}
	}

	pots := make([]Pot, 0, len(levels))
	previousLevel := int64(0)
	for idx, level := range levels {
		pot := Pot{
			Amount:          0,
			EligiblePlayers: make([]string, 0),
		}

		for _, playerID := range playerIDs {
			contribution := h.Contributions[playerID]
			pot.Amount += capChips(contribution, level) - capChips(contribution, previousLevel)

			if idx == len(levels)-1 && contribution > level {
				pot.Amount += contribution - level
			}
		}

		for _, playerID := range h.PlayersStillInHand {
			if h.Contributions[playerID] >= level {
				pot.EligiblePlayers = append(pot.EligiblePlayers, playerID)
			}
		}

		pots = append(pots, pot)
		previousLevel = level
	}

	return pots
}

func (h Hand) contributorsInSeatOrder() []string {
	playerIDs := make([]string, 0)
	for _, playerID := range h.SeatMap {
		if _, exist := h.Contributions[playerID]; exist {
			playerIDs = append(playerIDs, playerID)
		}
	}
	return playerIDs
}

func capChips(chips, limit int64) int64 {
	if chips > limit {
		return limit
	}
	return chips
}

// lastPlayerAwards gives every pot to the only player left in the hand.
func (h Hand) lastPlayerAwards() []PotAward {
	winner := h.PlayersStillInHand[0]

	awards := make([]PotAward, 0, len(h.Pots))
	for idx, pot := range h.Pots {
		awards = append(awards, PotAward{
			PotIndex: idx,
			Amount:   pot.Amount,
			Winners:  []string{winner},
			Shares:   map[string]int64{winner: pot.Amount},
		})
	}
	return awards
}

/*
showdownAwards 攤牌分池
  - 每個池獨立比牌, 只有該池參與者可以贏
  - 平手平分, 餘數從 Button 下家開始依座位順序一次一個籌碼分配
*/
func (h Hand) showdownAwards() []PotAward {
	sm := h.seatManager()
	order := sm.ListPlayerIDsFrom((h.ButtonOnPosition + 1) % len(h.SeatMap))

	awards := make([]PotAward, 0, len(h.Pots))
	for idx, pot := range h.Pots {
		if len(pot.EligiblePlayers) == 0 {
			continue
		}

		best := int64(0)
		for i, playerID := range pot.EligiblePlayers {
			value := h.HandEvaluations[playerID].Value
			if i == 0 || value > best {
				best = value
			}
		}

		winners := make([]string, 0)
		for _, playerID := range order {
			if funk.Contains(pot.EligiblePlayers, playerID) && h.HandEvaluations[playerID].Value == best {
				winners = append(winners, playerID)
			}
		}

		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))
		shares := make(map[string]int64)
		for i, playerID := range winners {
			shares[playerID] = share
			if int64(i) < remainder {
				shares[playerID]++
			}
		}

		awards = append(awards, PotAward{
			PotIndex: idx,
			Amount:   pot.Amount,
			Winners:  winners,
			Shares:   shares,
		})
	}
	return awards
}
