// Package conversation runs the two-round tool dispatch loop between the
// language model and the clinic's tools.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/upfh/frontdesk/internal/booking"
	"github.com/upfh/frontdesk/internal/directory"
	"github.com/upfh/frontdesk/internal/fees"
	"github.com/upfh/frontdesk/internal/notify"
	"github.com/upfh/frontdesk/internal/observability/metrics"
	"github.com/upfh/frontdesk/internal/schedule"
	"github.com/upfh/frontdesk/internal/sitesearch"
	"github.com/upfh/frontdesk/pkg/logging"
)

// Dispatcher wires the language model to the clinic's tools. Each turn
// allows the model one round of tool calls followed by one closing round;
// the protocol never runs a third model round.
type Dispatcher struct {
	llm          LLMClient
	sessions     *SessionStore
	availability *schedule.Calculator
	booking      *booking.Coordinator
	fees         *fees.Estimator
	search       sitesearch.Searcher
	notify       *notify.Service
	metrics      *metrics.AgentMetrics
	logger       *logging.Logger
}

// Deps bundles the dispatcher's collaborators.
type Deps struct {
	LLM          LLMClient
	Sessions     *SessionStore
	Availability *schedule.Calculator
	Booking      *booking.Coordinator
	Fees         *fees.Estimator
	Search       sitesearch.Searcher
	Notify       *notify.Service
	Metrics      *metrics.AgentMetrics
	Logger       *logging.Logger
}

// NewDispatcher creates the tool dispatch loop.
func NewDispatcher(deps Deps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	search := deps.Search
	if search == nil {
		search = sitesearch.Disabled{}
	}
	return &Dispatcher{
		llm:          deps.LLM,
		sessions:     deps.Sessions,
		availability: deps.Availability,
		booking:      deps.Booking,
		fees:         deps.Fees,
		search:       search,
		notify:       deps.Notify,
		metrics:      deps.Metrics,
		logger:       logger,
	}
}

// RunTurn processes one patient utterance and returns the assistant's
// reply. Tool failures are folded into the conversation as structured
// payloads; only a model failure is returned as an error.
func (d *Dispatcher) RunTurn(ctx context.Context, sessionID, utterance string) (string, error) {
	history := d.sessions.History(sessionID)
	if len(history) == 0 {
		history = append(history, ChatMessage{Role: ChatRoleAssistant, Content: WelcomeBubble})
	}
	userMsg := ChatMessage{Role: ChatRoleUser, Content: utterance}
	history = append(history, userMsg)

	first, err := d.modelRound(ctx, "1", LLMRequest{
		System:   []string{SystemPrompt},
		Messages: history,
		Tools:    Catalogue(),
	})
	if err != nil {
		d.metrics.ObserveTurn("model_error")
		return "", err
	}

	if first.FinishReason != FinishToolCalls || len(first.ToolCalls) == 0 {
		d.sessions.Append(sessionID, userMsg, ChatMessage{Role: ChatRoleAssistant, Content: first.Text})
		d.metrics.ObserveTurn("ok")
		return first.Text, nil
	}

	assistantMsg := ChatMessage{
		Role:      ChatRoleAssistant,
		Content:   first.Text,
		ToolCalls: first.ToolCalls,
	}
	history = append(history, assistantMsg)

	toolMsgs := make([]ChatMessage, 0, len(first.ToolCalls))
	for _, call := range first.ToolCalls {
		payload := d.executeTool(ctx, call)
		toolMsgs = append(toolMsgs, ChatMessage{
			Role:       ChatRoleTool,
			Content:    payload,
			ToolCallID: call.ID,
			ToolName:   call.Name,
		})
	}
	history = append(history, toolMsgs...)

	// Closing round: no tools offered, so the model must answer in text.
	second, err := d.modelRound(ctx, "2", LLMRequest{
		System:   []string{SystemPrompt},
		Messages: history,
	})
	if err != nil {
		d.metrics.ObserveTurn("model_error")
		return "", err
	}

	appended := append([]ChatMessage{userMsg, assistantMsg}, toolMsgs...)
	appended = append(appended, ChatMessage{Role: ChatRoleAssistant, Content: second.Text})
	d.sessions.Append(sessionID, appended...)
	d.metrics.ObserveTurn("ok")
	return second.Text, nil
}

func (d *Dispatcher) modelRound(ctx context.Context, round string, req LLMRequest) (LLMResponse, error) {
	start := time.Now()
	resp, err := d.llm.Complete(ctx, req)
	d.metrics.ObserveModelLatency(round, time.Since(start).Seconds())
	if err != nil {
		d.logger.Error("model round failed", "round", round, "error", err)
		return LLMResponse{}, fmt.Errorf("conversation: model round %s: %w", round, err)
	}
	return resp, nil
}

// executeTool runs one tool call and serializes its result. Failures come
// back as {"error": ...} payloads for the model to relay; they never abort
// the turn.
func (d *Dispatcher) executeTool(ctx context.Context, call ToolCallRequest) string {
	args := decodeArgs(call, d.logger)

	result, err := d.dispatch(ctx, call.Name, args)
	if err != nil {
		d.metrics.ObserveToolCall(call.Name, "error")
		d.logger.Warn("tool call failed", "tool", call.Name, "error", err)
		return marshalPayload(map[string]string{"error": err.Error()})
	}
	d.metrics.ObserveToolCall(call.Name, "ok")
	return marshalPayload(result)
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case ToolCheckAvailability:
		var req schedule.Request
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		return d.availability.Compute(ctx, req)

	case ToolCreateEvent:
		var req booking.Request
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		return d.booking.Book(ctx, req)

	case ToolEstimateFee:
		var req struct {
			Income     float64 `json:"income"`
			FamilySize int     `json:"family_size"`
			Procedure  string  `json:"procedure"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		quote, err := d.fees.Estimate(req.Income, req.FamilySize, req.Procedure)
		if errors.Is(err, fees.ErrUnresolvedProcedure) {
			// Still a usable answer: the quote echoes the raw term at
			// full charge and the model can ask the patient to clarify.
			return quote, nil
		}
		if err != nil {
			return nil, err
		}
		return quote, nil

	case ToolListServices:
		return map[string]any{"services": fees.Services()}, nil

	case ToolLocationLookup:
		var req struct {
			Keyword string `json:"keyword"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		loc, ok := directory.Lookup(req.Keyword)
		if !ok {
			return nil, fmt.Errorf("no location matches %q", req.Keyword)
		}
		return loc, nil

	case ToolSiteSearch:
		var req struct {
			Query string `json:"query"`
			TopK  int    `json:"top_k"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		if req.TopK <= 0 {
			req.TopK = 30
		}
		hits, err := d.search.Search(ctx, req.Query, req.TopK)
		if err != nil {
			return nil, err
		}
		return map[string]any{"results": hits}, nil

	case ToolSiteSummary:
		// Summary is search-then-summarize: the model passes a topic, not
		// a URL, and gets back one summary per matching page.
		var req struct {
			Query string `json:"query"`
			TopK  int    `json:"top_k"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		if req.TopK <= 0 {
			req.TopK = 3
		}
		hits, err := d.search.Search(ctx, req.Query, req.TopK)
		if err != nil {
			return nil, err
		}
		summaries := make([]map[string]string, 0, len(hits))
		for _, hit := range hits {
			summary, err := d.search.Summarize(ctx, hit.URL)
			if err != nil {
				return nil, err
			}
			summaries = append(summaries, map[string]string{"url": hit.URL, "summary": summary})
		}
		return map[string]any{"summaries": summaries}, nil

	case ToolSubmitApptRequest:
		var req notify.AppointmentRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("bad arguments: %w", err)
		}
		if d.notify == nil {
			return nil, errors.New("appointment requests are not configured")
		}
		if err := d.notify.SubmitAppointmentRequest(ctx, req); err != nil {
			return nil, err
		}
		return map[string]string{"status": "submitted"}, nil

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// decodeArgs normalizes the model's argument blob to a JSON object.
// Malformed JSON degrades to an empty object rather than failing the call;
// the tool's own validation reports what is missing.
func decodeArgs(call ToolCallRequest, logger *logging.Logger) json.RawMessage {
	if len(call.Arguments) == 0 {
		return json.RawMessage("{}")
	}
	if !json.Valid(call.Arguments) {
		logger.Warn("malformed tool arguments, using empty set", "tool", call.Name)
		return json.RawMessage("{}")
	}
	return call.Arguments
}

func marshalPayload(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"could not serialize tool result: %s"}`, err)
	}
	return string(b)
}
