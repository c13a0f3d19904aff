package testcases

import (
	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"github.com/weedbox/holdemtable"
)

func NewDefaultCreateTable(redeemChips int64, playerIDs ...string) holdemtable.CreateTable {
	players := funk.Map(playerIDs, func(playerID string) holdemtable.JoinPlayer {
		return holdemtable.JoinPlayer{
			PlayerID:    playerID,
			RedeemChips: redeemChips,
		}
	}).([]holdemtable.JoinPlayer)

	return holdemtable.CreateTable{
		TableID:       uuid.New().String(),
		GameID:        uuid.New().String(),
		NumberOfSeats: 6,
		StartingChips: redeemChips,
		Players:       players,
	}
}
