package open_hand_manager

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_InitOpenHandManager(t *testing.T) {
	options := OpenHandOption{
		Timeout: 1,
	}

	m := NewOpenHandManager(options)

	assert.Equal(t, options.Timeout, m.GetState().Timeout)
	assert.Equal(t, 0, m.GetState().HandCount)
	assert.Equal(t, 0, len(m.GetState().Participants))
	assert.False(t, m.IsWaiting())
}

func Test_OpenHandManager_AllReady(t *testing.T) {
	var readyCount int32
	var readyState OpenHandState
	m := NewOpenHandManager(OpenHandOption{
		OnOpenHandReady: func(state OpenHandState) {
			readyState = state
			atomic.AddInt32(&readyCount, 1)
		},
	})

	m.Setup(3, map[string]int{
		"player 1": 0,
		"player 2": 2,
		"player 3": 5,
	})
	assert.True(t, m.IsWaiting())

	assert.NoError(t, m.Ready("player 1"))
	assert.NoError(t, m.Ready("player 2"))
	assert.True(t, m.GetState().Participants["player 1"].IsReady)
	assert.False(t, m.GetState().Participants["player 3"].IsReady)
	assert.Equal(t, int32(0), atomic.LoadInt32(&readyCount))

	assert.NoError(t, m.Ready("player 3"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&readyCount) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 3, readyState.HandCount)
	for _, participant := range readyState.Participants {
		assert.True(t, participant.IsReady)
	}
	assert.False(t, m.IsWaiting())
}

func Test_OpenHandManager_UnknownParticipant(t *testing.T) {
	m := NewOpenHandManager(OpenHandOption{})

	assert.ErrorIs(t, m.Ready("player 1"), ErrNotSetup)

	m.Setup(0, map[string]int{
		"player 1": 0,
		"player 2": 1,
	})
	assert.ErrorIs(t, m.Ready("player 9"), ErrParticipantNotFound)
	m.Stop()
	assert.False(t, m.IsWaiting())
}

func Test_OpenHandManager_TimeoutAutoReady(t *testing.T) {
	var readyCount int32
	m := NewOpenHandManager(OpenHandOption{
		Timeout: 1,
		OnOpenHandReady: func(state OpenHandState) {
			atomic.AddInt32(&readyCount, 1)
		},
	})

	m.Setup(1, map[string]int{
		"player 1": 0,
		"player 2": 1,
	})
	assert.NoError(t, m.Ready("player 1"))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&readyCount) == 1
	}, 3*time.Second, 50*time.Millisecond)
}
