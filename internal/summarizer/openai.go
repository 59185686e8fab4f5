package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when summarization is attempted without a
// configured OpenAI API key. It surfaces on first use, not at startup.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

const (
	defaultModel = openai.GPT3Dot5Turbo

	// The request shape matters more than it looks: temperature sits in the
	// middle of the range to favor faithful summaries, and max tokens bounds
	// the generation budget per call.
	maxSummaryTokens = 100
	temperature      = 0.7
)

// Config holds the settings for the OpenAI-backed summarizer.
type Config struct {
	APIKey  string
	Model   string // default: gpt-3.5-turbo
	BaseURL string // optional override (proxies, fakes in tests)
}

// OpenAI summarizes text through the OpenAI chat completions API.
// The credentialed client is established lazily on the first Summarize call
// and reused afterwards; construction never touches the network.
type OpenAI struct {
	cfg Config

	once    sync.Once
	client  *openai.Client
	initErr error
}

// NewOpenAI creates the summarizer without connecting. A missing API key is
// not an error here; it becomes one on first use.
func NewOpenAI(cfg Config) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &OpenAI{cfg: cfg}
}

// Summarize asks the model for a summary of at most ~30 words and returns
// the first choice's content, trimmed. An upstream response with no usable
// content yields an empty string, not an error. Transport, auth and quota
// errors are returned as-is; classification is the caller's job.
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	o.once.Do(o.init)
	if o.initErr != nil {
		return "", o.initErr
	}

	req := openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		MaxTokens:   maxSummaryTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize in ≤ 30 words:\n\n%s", text),
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAI) init() {
	if o.cfg.APIKey == "" {
		o.initErr = ErrMissingAPIKey
		return
	}

	clientConfig := openai.DefaultConfig(o.cfg.APIKey)
	if o.cfg.BaseURL != "" {
		clientConfig.BaseURL = o.cfg.BaseURL
	}

	o.client = openai.NewClientWithConfig(clientConfig)
}
