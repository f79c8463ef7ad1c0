package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/faculty-cli/pkg/anthropic"
	"github.com/sells-group/faculty-cli/pkg/gemini"
)

// Completer sends one system + user prompt pair to a completion service and
// returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// StatusError is a completion failure carrying the HTTP status of the
// service response.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion: HTTP %d: %v", e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// HTTPStatus implements resilience.StatusCoder.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// quotaMarkers appear in provider error bodies when the account is out of
// credits even though the status is not 402.
var quotaMarkers = []string{
	"insufficient_quota",
	"credit balance is too low",
}

func classify(err error, status int) error {
	if status == 0 {
		return err
	}
	if status != http.StatusPaymentRequired {
		msg := strings.ToLower(err.Error())
		for _, m := range quotaMarkers {
			if strings.Contains(msg, m) {
				status = http.StatusPaymentRequired
				break
			}
		}
	}
	return &StatusError{StatusCode: status, Err: err}
}

// AnthropicCompleter adapts an anthropic.Client to Completer.
type AnthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicCompleter creates an AnthropicCompleter.
func NewAnthropicCompleter(client anthropic.Client, model string, maxTokens int64) *AnthropicCompleter {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &AnthropicCompleter{client: client, model: model, maxTokens: maxTokens}
}

// Complete implements Completer. The system prompt is sent as a cached block
// since it repeats across every batch of a run.
func (c *AnthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(system),
		Messages: []anthropic.Message{
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", classify(eris.Wrap(err, "extract: anthropic completion"), anthropic.StatusCode(err))
	}
	resp.Usage.LogCost(c.model, "extract")
	return resp.Text(), nil
}

// GeminiCompleter adapts a gemini.Client to Completer.
type GeminiCompleter struct {
	client gemini.Client
	model  string
}

// NewGeminiCompleter creates a GeminiCompleter.
func NewGeminiCompleter(client gemini.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: client, model: model}
}

// Complete implements Completer.
func (c *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Generate(ctx, gemini.Request{
		Model:  c.model,
		System: system,
		Prompt: user,
	})
	if err != nil {
		return "", classify(eris.Wrap(err, "extract: gemini completion"), gemini.StatusCode(err))
	}
	return resp.Text, nil
}
