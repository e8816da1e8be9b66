package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/JaimeStill/curator/pkg/formatting"
)

// evidenceList tolerates models returning a bare string where a list of
// phrases was requested.
type evidenceList []string

func (e *evidenceList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*e = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*e = []string{single}
	return nil
}

type wireResult struct {
	DocType           string       `json:"doc_type"`
	DocSubtype        string       `json:"doc_subtype"`
	Confidence        *float64     `json:"confidence"`
	Evidence          evidenceList `json:"evidence"`
	ProposedNewLabel  string       `json:"proposed_new_label"`
	UncertaintyReason string       `json:"uncertainty_reason"`
}

// Model abstracts the langchaingo chat model for testing.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OpenAI is a live oracle backed by an OpenAI-compatible chat completion
// endpoint. Retries with exponential backoff and jitter wrap only the
// model call; prompt composition and response parsing are deterministic.
type OpenAI struct {
	model       Model
	name        string
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
	callTimeout time.Duration
}

// NewOpenAI creates a live oracle from the oracle configuration.
func NewOpenAI(cfg *Config, logger *slog.Logger) (*OpenAI, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.Token),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create oracle client: %w", err)
	}

	return &OpenAI{
		model:       llm,
		name:        cfg.Model,
		logger:      logger.With("system", "oracle"),
		maxAttempts: cfg.MaxRetries,
		baseDelay:   cfg.RetryBaseDuration(),
		callTimeout: cfg.CallTimeoutDuration(),
	}, nil
}

// NewOpenAIWithModel creates a live oracle around an existing model,
// used by tests to substitute a fake.
func NewOpenAIWithModel(model Model, cfg *Config, logger *slog.Logger) *OpenAI {
	return &OpenAI{
		model:       model,
		name:        cfg.Model,
		logger:      logger.With("system", "oracle"),
		maxAttempts: cfg.MaxRetries,
		baseDelay:   cfg.RetryBaseDuration(),
		callTimeout: cfg.CallTimeoutDuration(),
	}
}

// Name returns the configured chat model name.
func (o *OpenAI) Name() string {
	return o.name
}

// Classify sends the request to the chat model and parses its JSON reply.
// Transient failures are retried up to the configured attempt count with
// exponential backoff plus jitter; after exhaustion it returns ErrExhausted
// wrapped around the final error.
func (o *OpenAI) Classify(ctx context.Context, req Request) (RawResult, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, composeUserContent(req)),
	}

	var lastErr error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		content, err := o.generate(ctx, messages)
		if err == nil {
			parsed, perr := formatting.Parse[wireResult](content)
			if perr != nil {
				return RawResult{}, fmt.Errorf("%w: %w", ErrMalformed, perr)
			}
			return fromWire(parsed), nil
		}

		lastErr = err
		o.logger.Warn(
			"oracle call failed",
			"filename", req.Filename,
			"attempt", attempt,
			"max_attempts", o.maxAttempts,
			"error", err,
		)

		if attempt == o.maxAttempts {
			break
		}
		if err := o.backoff(ctx, attempt); err != nil {
			return RawResult{}, err
		}
	}

	return RawResult{}, fmt.Errorf("%w: %w", ErrExhausted, lastErr)
}

func (o *OpenAI) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	callCtx := ctx
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	resp, err := o.model.GenerateContent(
		callCtx, messages,
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrMalformed)
	}

	return resp.Choices[0].Content, nil
}

// backoff sleeps base * 2^(attempt-1) plus up to 25% jitter, aborting
// early if the run context is cancelled.
func (o *OpenAI) backoff(ctx context.Context, attempt int) error {
	delay := o.baseDelay << (attempt - 1)
	delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func fromWire(w wireResult) RawResult {
	return RawResult{
		DocType:           w.DocType,
		DocSubtype:        w.DocSubtype,
		Confidence:        w.Confidence,
		Evidence:          w.Evidence,
		ProposedNewLabel:  w.ProposedNewLabel,
		UncertaintyReason: w.UncertaintyReason,
	}
}
