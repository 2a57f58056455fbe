package backend

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

// Anthropic calls the Messages API.
type Anthropic struct {
	client    sdk.Client
	model     string
	maxTokens int64
	logger    *zap.Logger
}

// NewAnthropic creates a client. Retries are disabled; retry policy belongs to callers.
func NewAnthropic(cfg Config, logger *zap.Logger) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &Anthropic{
		client:    sdk.NewClient(opts...),
		model:     model,
		maxTokens: int64(cfg.MaxTokens),
		logger:    logger.Named("anthropic"),
	}
}

func (a *Anthropic) Name() string { return ProviderAnthropic }

func (a *Anthropic) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		a.logger.Error("create message failed", zap.String("model", a.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}

	a.logger.Debug("create message completed",
		zap.String("model", a.model),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))
	return b.String(), nil
}
