package seat_manager

const (
	UnsetSeatID = -1

	// EmptySeat 空位
	EmptySeat = ""
)
