package agent

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/google/uuid"
	"github.com/varunisrani/legal/appconfig"
	"github.com/varunisrani/legal/llm"
	"github.com/varunisrani/legal/model"
	"go.uber.org/zap"
)

// fallback body when the provider returns only empty content blocks; the
// envelope's responseText is never empty.
const emptyResultText = "Legal analysis completed successfully. Please check the detailed response."

// Provider is the outbound text-generation surface the agent depends on.
type Provider interface {
	Complete(ctx context.Context, req llm.CompletionRequest) <-chan async.Result[[]string]
	Stream(ctx context.Context, req llm.CompletionRequest) <-chan llm.StreamChunk
}

// LegalAgent is the query relay core: it resolves provider configuration per
// request, builds the prompt, invokes the provider and shapes the response
// envelope. Its only cross-request state is a best-effort query counter.
type LegalAgent struct {
	resolve    func() appconfig.ProviderConfig
	connect    func(cfg appconfig.ProviderConfig) Provider
	queryCount atomic.Int64
}

// NewLegalAgent wires explicit resolver and provider-factory functions. Tests
// substitute fakes here.
func NewLegalAgent(resolve func() appconfig.ProviderConfig, connect func(appconfig.ProviderConfig) Provider) *LegalAgent {
	return &LegalAgent{resolve: resolve, connect: connect}
}

// ProvideLegalAgent creates the production agent: environment-resolved
// configuration and the Anthropic Messages client.
func ProvideLegalAgent() *LegalAgent {
	return NewLegalAgent(appconfig.ResolveProvider, func(cfg appconfig.ProviderConfig) Provider {
		return llm.NewAnthropicClient(cfg.Model, llm.WithAPIKey(cfg.APIKey))
	})
}

// ProcessQuery runs one legal query through the relay pipeline and always
// returns a completed envelope; configuration and provider failures are
// converted to canned response bodies, never propagated.
func (a *LegalAgent) ProcessQuery(ctx context.Context, req model.LegalQueryRequest) model.LegalQueryResponse {
	start := time.Now()
	queryID := uuid.NewString()

	cfg := a.resolve()

	var responseText string
	switch {
	case !cfg.Configured():
		logger.Info("provider not configured, returning setup guidance", zap.String("queryId", queryID))
		responseText = setupRequiredText(req)

	default:
		provider := a.connect(cfg)
		blocks, err := async.Await(provider.Complete(ctx, llm.CompletionRequest{
			System:    SystemPrompt,
			Prompt:    BuildUserPrompt(req.Text, req.Context),
			MaxTokens: llm.MaxOutputTokens,
		}))

		if err != nil {
			logger.Error("provider call failed", zap.Error(err), zap.String("queryId", queryID))
			responseText = providerErrorText(err, req)
		} else {
			responseText = joinTurns(blocks, req.EffectiveTurnLimit(model.DefaultTurnLimit))
		}
	}

	a.queryCount.Add(1)

	end := time.Now()
	return model.LegalQueryResponse{
		QueryID:               queryID,
		Status:                model.StatusCompleted,
		ResponseText:          responseText,
		ProcessingTimeSeconds: end.Sub(start).Seconds(),
		Timestamp:             end.Format(time.RFC3339),
	}
}

// StreamQuery runs the streaming variant: provider text increments are
// forwarded as they arrive, followed by a completion marker, or an error
// marker if the call fails. When the provider is not configured a single
// error event is emitted.
func (a *LegalAgent) StreamQuery(ctx context.Context, req model.LegalQueryRequest) <-chan model.StreamEvent {
	out := make(chan model.StreamEvent, 16)

	go func() {
		defer close(out)

		cfg := a.resolve()
		if !cfg.Configured() {
			out <- model.StreamEvent{Error: "provider not configured: set ANTHROPIC_API_KEY"}
			return
		}

		provider := a.connect(cfg)
		chunks := provider.Stream(ctx, llm.CompletionRequest{
			System:    SystemPrompt,
			Prompt:    BuildUserPrompt(req.Text, req.Context),
			MaxTokens: llm.MaxOutputTokens,
		})

		for chunk := range chunks {
			if chunk.Err != nil {
				logger.Error("provider stream failed", zap.Error(chunk.Err))
				out <- model.StreamEvent{Error: chunk.Err.Error()}
				return
			}
			out <- model.StreamEvent{Content: chunk.Text}
		}

		out <- model.StreamEvent{Status: model.StatusCompleted}
	}()

	return out
}

// QueriesProcessed returns the process-wide query count. Reset on restart.
func (a *LegalAgent) QueriesProcessed() int64 {
	return a.queryCount.Load()
}

// joinTurns concatenates at most limit provider increments.
func joinTurns(blocks []string, limit int) string {
	if limit > 0 && len(blocks) > limit {
		blocks = blocks[:limit]
	}

	text := strings.TrimSpace(strings.Join(blocks, "\n\n"))
	if text == "" {
		return emptyResultText
	}
	return text
}
