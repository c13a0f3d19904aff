package open_hand_manager

func (m *openHandManager) readyGroupResetParticipants() {
	m.rg.ResetParticipants()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Participants = map[string]*OpenHandParticipant{}
}

func (m *openHandManager) readyGroupAddParticipant(participant OpenHandParticipant) {
	m.mu.Lock()
	m.state.Participants[participant.ID] = &OpenHandParticipant{
		ID:      participant.ID,
		Index:   participant.Index,
		IsReady: participant.IsReady,
	}
	m.mu.Unlock()

	m.rg.Add(int64(participant.Index), participant.IsReady)
}

func (m *openHandManager) readyGroupOnCompleted() {
	m.mu.Lock()
	if !m.isWaiting {
		m.mu.Unlock()
		return
	}

	m.isWaiting = false
	for participantID := range m.state.Participants {
		m.state.Participants[participantID].IsReady = true
	}
	m.mu.Unlock()

	m.onOpenHandReady(m.GetState())
}

// readyGroupReady 不可持有 mu 呼叫 rg.Ready, OnCompleted 可能同步觸發
func (m *openHandManager) readyGroupReady(participantID string) error {
	m.mu.Lock()
	if !m.isWaiting {
		m.mu.Unlock()
		return ErrNotSetup
	}

	participant, exist := m.state.Participants[participantID]
	if !exist {
		m.mu.Unlock()
		return ErrParticipantNotFound
	}

	participant.IsReady = true
	index := participant.Index
	m.mu.Unlock()

	m.rg.Ready(int64(index))
	return nil
}
