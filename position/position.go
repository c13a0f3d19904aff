package position

const (
	Position_Unknown = "unknown"
	Position_Dealer  = "dealer"
	Position_SB      = "sb"
	Position_BB      = "bb"
	Position_UG      = "ug"
	Position_UG1     = "ug1"
	Position_UG2     = "ug2"
	Position_UG3     = "ug3"
	Position_HJ      = "hj"
	Position_CO      = "co"
)

/*
	GetPlayerPositionMap 取得本手玩家位置
	  - @param playerIDs 以 Dealer 為第一位、依座位順序排列的玩家
	  - @return key: player id, value: positions
*/
func GetPlayerPositionMap(playerIDs []string) map[string][]string {
	playerPositionMap := make(map[string][]string)
	positions := newPositions(len(playerIDs))
	for idx, playerID := range playerIDs {
		if idx < len(positions) {
			playerPositionMap[playerID] = positions[idx]
		} else {
			playerPositionMap[playerID] = []string{Position_Unknown}
		}
	}
	return playerPositionMap
}

func newPositions(playerCount int) [][]string {
	switch playerCount {
	case 9:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_UG1},
			{Position_UG2},
			{Position_UG3},
			{Position_HJ},
			{Position_CO},
		}
	case 8:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_UG1},
			{Position_UG2},
			{Position_HJ},
			{Position_CO},
		}
	case 7:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_UG1},
			{Position_HJ},
			{Position_CO},
		}
	case 6:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_HJ},
			{Position_CO},
		}
	case 5:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_CO},
		}
	case 4:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_CO},
		}
	case 3:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
		}
	case 2:
		return [][]string{
			{Position_Dealer, Position_SB},
			{Position_BB},
		}
	default:
		return make([][]string, 0)
	}
}
