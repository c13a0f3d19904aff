package holdemtable

// CreateTable seats the players of a new table. Players without RedeemChips get StartingChips.
type CreateTable struct {
	TableID       string       `json:"table_id"`
	GameID        string       `json:"game_id"`
	NumberOfSeats int          `json:"number_of_seats"`
	StartingChips int64        `json:"starting_chips"`
	Players       []JoinPlayer `json:"players"`
	RandomSeats   bool         `json:"random_seats"`
}

// StartNewHand deals the next hand. Zero Blinds fall back to the manager's blind schedule.
type StartNewHand struct {
	TableID string `json:"table_id"`
	Blinds  Blinds `json:"blinds"`
}

func NewJoinPlayers(playerIDs []string) []JoinPlayer {
	players := make([]JoinPlayer, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		players = append(players, JoinPlayer{PlayerID: playerID})
	}
	return players
}
