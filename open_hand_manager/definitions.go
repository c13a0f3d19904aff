package open_hand_manager

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("open hand manager: participant not found")
	ErrNotSetup            = errors.New("open hand manager: no hand is waiting for players")
)

// OpenHandManager gates the next hand until every participant is ready.
type OpenHandManager interface {
	Ready(participantID string) error
	Setup(handCount int, participants map[string]int)
	Stop()
	IsWaiting() bool
	GetState() OpenHandState
}

type openHandManager struct {
	mu              sync.Mutex
	onOpenHandReady func(state OpenHandState)
	rg              *syncsaga.ReadyGroup
	state           *OpenHandState
	isWaiting       bool
}

type OpenHandOption struct {
	Timeout         int // seconds, 0 表示不自動 ready
	OnOpenHandReady func(state OpenHandState)
}

type OpenHandState struct {
	Timeout      int                             `json:"timeout"`
	HandCount    int                             `json:"hand_count"`
	Participants map[string]*OpenHandParticipant `json:"participants"` // key: participant_id, value: participant
}

type OpenHandParticipant struct {
	ID      string `json:"id"`
	Index   int    `json:"index"`
	IsReady bool   `json:"is_ready"`
}
