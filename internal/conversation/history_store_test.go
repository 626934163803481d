package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndHistory(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Append("s1", ChatMessage{Role: ChatRoleUser, Content: "hi"})
	store.Append("s1", ChatMessage{Role: ChatRoleAssistant, Content: "hello"})

	history := store.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Content)

	// The returned slice is a copy; mutating it leaves the store intact.
	history[0].Content = "tampered"
	assert.Equal(t, "hi", store.History("s1")[0].Content)
}

func TestHistoryUnknownSession(t *testing.T) {
	store := NewSessionStore(time.Hour)
	assert.Empty(t, store.History("nope"))
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	store := NewSessionStore(time.Minute)
	store.Append("old", ChatMessage{Role: ChatRoleUser, Content: "hi"})
	store.Append("fresh", ChatMessage{Role: ChatRoleUser, Content: "hi"})

	// Backdate the old session past the TTL.
	store.mu.Lock()
	store.sessions["old"].lastSeen = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	removed := store.Sweep(time.Now())
	assert.Equal(t, 1, removed)
	assert.Empty(t, store.History("old"))
	assert.Len(t, store.History("fresh"), 1)
	assert.Equal(t, 1, store.Len())
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	store := NewSessionStore(0)
	store.Append("s1", ChatMessage{Role: ChatRoleUser, Content: "hi"})
	assert.Equal(t, 0, store.Sweep(time.Now().Add(24*time.Hour)))
	assert.Len(t, store.History("s1"), 1)
}

func TestConcurrentAppends(t *testing.T) {
	store := NewSessionStore(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Append("s1", ChatMessage{Role: ChatRoleUser, Content: "x"})
			store.History("s1")
		}()
	}
	wg.Wait()
	assert.Len(t, store.History("s1"), 20)
}
