package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/pkg/errors"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	// MaxOutputTokens bounds the provider's output size per request.
	MaxOutputTokens = 4000
)

// CompletionRequest carries one provider invocation.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// StreamChunk is a single text increment from a streaming completion. A
// non-nil Err terminates the stream.
type StreamChunk struct {
	Text string
	Err  error
}

// AnthropicClient talks to the Anthropic Messages API over plain HTTP.
type AnthropicClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	model   string
}

type Option func(*AnthropicClient)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *AnthropicClient) { c.baseURL = url }
}

// WithAPIKey overrides the key read from the environment.
func WithAPIKey(key string) Option {
	return func(c *AnthropicClient) { c.apiKey = key }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *AnthropicClient) { c.http = h }
}

// NewAnthropicClient builds a client for the given model. The API key is read
// from ANTHROPIC_API_KEY unless overridden.
func NewAnthropicClient(model string, opts ...Option) *AnthropicClient {
	c := &AnthropicClient{
		http:    http.DefaultClient,
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: anthropicBaseURL,
		model:   model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages API wire types. Content is kept to plain text blocks; the relay
// never sends tool calls.
type messagesRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	System    string        `json:"system,omitempty"`
	MaxTokens int           `json:"max_tokens"`
	Stream    bool          `json:"stream,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messagesResponse struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type apiErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete runs one non-streaming completion and yields the text of each
// returned content block, in order.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) <-chan async.Result[[]string] {
	return async.Go(func() ([]string, error) {
		resp, err := c.post(ctx, req, false)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var body messagesResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, errors.Wrap(err, "decode messages response")
		}

		texts := make([]string, 0, len(body.Content))
		for _, block := range body.Content {
			if block.Type == "text" && block.Text != "" {
				texts = append(texts, block.Text)
			}
		}
		return texts, nil
	})
}

// Stream runs a streaming completion and emits one StreamChunk per text
// delta. The channel is closed when the provider stream ends; a chunk with a
// non-nil Err is the last element on failure.
func (c *AnthropicClient) Stream(ctx context.Context, req CompletionRequest) <-chan StreamChunk {
	out := make(chan StreamChunk, 16)

	go func() {
		defer close(out)

		resp, err := c.post(ctx, req, true)
		if err != nil {
			out <- StreamChunk{Err: err}
			return
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			out <- StreamChunk{Err: err}
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Bytes()
			if !bytes.HasPrefix(line, []byte("data:")) {
				continue
			}
			payload := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
			if len(payload) == 0 {
				continue
			}

			var event streamEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				// skip unparseable frames, the terminal event still arrives
				continue
			}

			switch event.Type {
			case "content_block_delta":
				if event.Delta.Type == "text_delta" && event.Delta.Text != "" {
					out <- StreamChunk{Text: event.Delta.Text}
				}
			case "error":
				out <- StreamChunk{Err: errors.Errorf("anthropic: %s: %s", event.Error.Type, event.Error.Message)}
				return
			case "message_stop":
				return
			}
		}

		if err := scanner.Err(); err != nil {
			out <- StreamChunk{Err: errors.Wrap(err, "read event stream")}
		}
	}()

	return out
}

type streamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) post(ctx context.Context, req CompletionRequest, stream bool) (*http.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = MaxOutputTokens
	}

	wire := messagesRequest{
		Model:     c.model,
		System:    req.System,
		MaxTokens: maxTokens,
		Stream:    stream,
		Messages: []chatMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return nil, errors.Wrap(err, "marshal messages request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build messages request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "call anthropic")
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return errors.Errorf("anthropic: %s: %s", apiErr.Error.Type, apiErr.Error.Message)
	}
	return errors.Errorf("anthropic: unexpected status %d", resp.StatusCode)
}
