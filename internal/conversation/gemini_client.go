package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GeminiLLMClient implements LLMClient using Google's Gemini API with
// function calling.
type GeminiLLMClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiLLMClient creates a new Gemini LLM client.
func NewGeminiLLMClient(ctx context.Context, apiKey, modelID string) (*GeminiLLMClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("conversation: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("conversation: failed to create gemini client: %w", err)
	}

	return &GeminiLLMClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// Complete sends a completion request to Gemini and returns the response.
func (c *GeminiLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	model := c.client.GenerativeModel(c.modelID)

	if req.Temperature >= 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}

	if len(req.System) > 0 {
		systemText := strings.Join(req.System, "\n\n")
		if strings.TrimSpace(systemText) != "" {
			model.SystemInstruction = genai.NewUserContent(genai.Text(systemText))
		}
	}

	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiFunctions(req.Tools)}}
	}

	if len(req.Messages) == 0 {
		return LLMResponse{}, errors.New("conversation: gemini requires at least one message")
	}

	cs := model.StartChat()
	for _, msg := range req.Messages[:len(req.Messages)-1] {
		content := toGeminiContent(msg)
		if content != nil {
			cs.History = append(cs.History, content)
		}
	}

	last := toGeminiContent(req.Messages[len(req.Messages)-1])
	if last == nil {
		return LLMResponse{}, errors.New("conversation: last message is empty")
	}
	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("conversation: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return LLMResponse{}, errors.New("conversation: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return LLMResponse{}, errors.New("conversation: gemini returned empty content")
	}

	var text strings.Builder
	var calls []ToolCallRequest
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			calls = append(calls, ToolCallRequest{
				ID:        uuid.NewString(),
				Name:      p.Name,
				Arguments: args,
			})
		}
	}

	result := LLMResponse{
		Text:         strings.TrimSpace(text.String()),
		FinishReason: FinishStop,
		ToolCalls:    calls,
	}
	if len(calls) > 0 {
		result.FinishReason = FinishToolCalls
	}

	if resp.UsageMetadata != nil {
		result.Usage = TokenUsage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result, nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiLLMClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func toGeminiFunctions(tools []ToolDefinition) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(tool.Params) > 0 {
			props := make(map[string]*genai.Schema, len(tool.Params))
			var required []string
			for _, p := range tool.Params {
				props[p.Name] = &genai.Schema{
					Type:        toGeminiType(p.Type),
					Description: p.Description,
				}
				if p.Required {
					required = append(required, p.Name)
				}
			}
			decl.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			}
		}
		decls = append(decls, decl)
	}
	return decls
}

func toGeminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// toGeminiContent maps one internal message onto Gemini's content model:
// assistant tool calls become FunctionCall parts, tool results become
// FunctionResponse parts, everything else is text. Returns nil for messages
// with nothing to send.
func toGeminiContent(msg ChatMessage) *genai.Content {
	switch msg.Role {
	case ChatRoleAssistant:
		content := &genai.Content{Role: "model"}
		if strings.TrimSpace(msg.Content) != "" {
			content.Parts = append(content.Parts, genai.Text(msg.Content))
		}
		for _, call := range msg.ToolCalls {
			var args map[string]any
			if err := json.Unmarshal(call.Arguments, &args); err != nil || args == nil {
				args = map[string]any{}
			}
			content.Parts = append(content.Parts, genai.FunctionCall{Name: call.Name, Args: args})
		}
		if len(content.Parts) == 0 {
			return nil
		}
		return content
	case ChatRoleTool:
		// Gemini wants a JSON object; wrap scalar or array results.
		var decoded any
		if err := json.Unmarshal([]byte(msg.Content), &decoded); err != nil {
			decoded = msg.Content
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			obj = map[string]any{"result": decoded}
		}
		return &genai.Content{
			Role:  "function",
			Parts: []genai.Part{genai.FunctionResponse{Name: msg.ToolName, Response: obj}},
		}
	case ChatRoleSystem:
		return nil
	default:
		if strings.TrimSpace(msg.Content) == "" {
			return nil
		}
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}}
	}
}
