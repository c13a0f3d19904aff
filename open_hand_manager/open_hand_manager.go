package open_hand_manager

import (
	"github.com/weedbox/syncsaga"
)

func NewOpenHandManager(options OpenHandOption) OpenHandManager {
	m := &openHandManager{
		onOpenHandReady: options.OnOpenHandReady,
		state: &OpenHandState{
			Timeout:      options.Timeout,
			HandCount:    0,
			Participants: make(map[string]*OpenHandParticipant),
		},
	}

	if m.onOpenHandReady == nil {
		m.onOpenHandReady = func(OpenHandState) {}
	}

	if options.Timeout > 0 {
		m.rg = syncsaga.NewReadyGroup(syncsaga.WithTimeout(options.Timeout, func(rg *syncsaga.ReadyGroup) {
			// Auto Ready By Default
			for idx, isReady := range rg.GetParticipantStates() {
				if !isReady {
					rg.Ready(idx)
				}
			}
		}))
	} else {
		m.rg = syncsaga.NewReadyGroup()
	}

	return m
}

func (m *openHandManager) Ready(participantID string) error {
	return m.readyGroupReady(participantID)
}

/*
Setup 準備下一手
  - handCount 為已完成的手數
  - participants key 為玩家 id, value 為座位
*/
func (m *openHandManager) Setup(handCount int, participants map[string]int) {
	m.rg.Stop()

	m.mu.Lock()
	m.state.HandCount = handCount
	m.isWaiting = true
	m.mu.Unlock()

	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted()
	})
	m.readyGroupResetParticipants()
	for id, idx := range participants {
		m.readyGroupAddParticipant(OpenHandParticipant{
			ID:      id,
			Index:   idx,
			IsReady: false,
		})
	}

	m.rg.Start()
}

func (m *openHandManager) Stop() {
	m.rg.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.isWaiting = false
}

func (m *openHandManager) IsWaiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isWaiting
}

func (m *openHandManager) GetState() OpenHandState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := OpenHandState{
		Timeout:      m.state.Timeout,
		HandCount:    m.state.HandCount,
		Participants: make(map[string]*OpenHandParticipant, len(m.state.Participants)),
	}
	for id, participant := range m.state.Participants {
		p := *participant
		state.Participants[id] = &p
	}
	return state
}
