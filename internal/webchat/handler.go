// Package webchat is the thin HTTP transport in front of the conversation
// loop: one JSON request per patient message, one JSON reply back.
package webchat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/upfh/frontdesk/pkg/logging"
)

// Agent runs one conversation turn.
type Agent interface {
	RunTurn(ctx context.Context, sessionID, utterance string) (string, error)
}

// Handler serves the web chat endpoint.
type Handler struct {
	agent  Agent
	logger *logging.Logger
}

// ChatRequest is what the chat widget posts. SessionID is optional; a new
// session is minted when it is absent.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse carries the assistant's reply and the session to continue on.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

const fallbackReply = "Sorry, something went wrong on our end. Please try again, or call us at 801-417-0131."

// NewHandler creates a web chat handler.
func NewHandler(agent Agent, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{agent: agent, logger: logger}
}

// HandleChat processes one patient message synchronously.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.agent.RunTurn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		// The patient gets an apology, not a stack of gateway errors.
		h.logger.Error("turn failed", "error", err, "session_id", req.SessionID)
		reply = fallbackReply
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
