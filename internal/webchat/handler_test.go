package webchat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	reply     string
	err       error
	sessionID string
	utterance string
}

func (f *fakeAgent) RunTurn(ctx context.Context, sessionID, utterance string) (string, error) {
	f.sessionID = sessionID
	f.utterance = utterance
	return f.reply, f.err
}

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)
	return rec
}

func TestHandleChatRoundTrip(t *testing.T) {
	agent := &fakeAgent{reply: "We have openings Tuesday morning."}
	h := NewHandler(agent, nil)

	rec := postChat(t, h, `{"session_id":"s1","message":"any openings?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "We have openings Tuesday morning.", resp.Reply)
	assert.Equal(t, "any openings?", agent.utterance)
}

func TestHandleChatMintsSessionID(t *testing.T) {
	agent := &fakeAgent{reply: "hello"}
	h := NewHandler(agent, nil)

	rec := postChat(t, h, `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, resp.SessionID, agent.sessionID)
}

func TestHandleChatValidation(t *testing.T) {
	h := NewHandler(&fakeAgent{}, nil)

	rec := postChat(t, h, `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postChat(t, h, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChatAgentFailureGetsFallback(t *testing.T) {
	agent := &fakeAgent{err: errors.New("model gateway down")}
	h := NewHandler(agent, nil)

	rec := postChat(t, h, `{"session_id":"s1","message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "801-417-0131")
	assert.NotContains(t, resp.Reply, "gateway")
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler(&fakeAgent{}, nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
