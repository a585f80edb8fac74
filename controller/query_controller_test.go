package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varunisrani/legal/agent"
	"github.com/varunisrani/legal/appconfig"
	"github.com/varunisrani/legal/llm"
	"github.com/varunisrani/legal/model"
)

type stubProvider struct {
	blocks       []string
	err          error
	streamChunks []llm.StreamChunk
}

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) <-chan async.Result[[]string] {
	return async.Go(func() ([]string, error) { return s.blocks, s.err })
}

func (s *stubProvider) Stream(ctx context.Context, req llm.CompletionRequest) <-chan llm.StreamChunk {
	out := make(chan llm.StreamChunk, len(s.streamChunks))
	for _, chunk := range s.streamChunks {
		out <- chunk
	}
	close(out)
	return out
}

func newTestController(configured bool, provider *stubProvider) *QueryController {
	resolve := func() appconfig.ProviderConfig {
		if configured {
			return appconfig.ProviderConfig{APIKey: "test-key", Model: appconfig.DefaultModel}
		}
		return appconfig.ProviderConfig{}
	}
	legalAgent := agent.NewLegalAgent(resolve, func(cfg appconfig.ProviderConfig) agent.Provider {
		return provider
	})
	return ProvideQueryController(legalAgent)
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleQueryRejectsMissingText(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	w := postJSON(c.HandleQuery, "/legal/query", `{"context": "no text"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(c.HandleQuery, "/legal/query", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleQueryWithoutCredentials(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	w := postJSON(c.HandleQuery, "/legal/query", `{"text": "What is a force majeure clause?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LegalQueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, model.StatusCompleted, resp.Status)
	assert.Contains(t, resp.ResponseText, "force majeure")
	assert.Contains(t, resp.ResponseText, "Setup Required")
	assert.NotEmpty(t, resp.QueryID)
}

func TestHandleQuerySuccess(t *testing.T) {
	c := newTestController(true, &stubProvider{blocks: []string{"The clause excuses performance."}})

	w := postJSON(c.HandleQuery, "/legal/query", `{"text": "What is a force majeure clause?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LegalQueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The clause excuses performance.", resp.ResponseText)
}

func TestHandleContractReviewPrefixesQuery(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	w := postJSON(c.HandleContractReview, "/legal/contract-review", `{"text": "unlimited liability clause"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LegalQueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// the canned body embeds the rewritten query, proving the forwarded text
	assert.Contains(t, resp.ResponseText, "CONTRACT REVIEW: unlimited liability clause")
	assert.Contains(t, resp.ResponseText, "Contract Analysis Context:")
}

func TestHandleRiskAssessmentPrefixesQuery(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	w := postJSON(c.HandleRiskAssessment, "/legal/risk-assessment", `{"text": "no terms of service"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LegalQueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, resp.ResponseText, "LEGAL RISK ASSESSMENT: no terms of service")
	assert.Contains(t, resp.ResponseText, "Risk Analysis Context:")
}

func TestHandleStreamEmitsEventFrames(t *testing.T) {
	c := newTestController(true, &stubProvider{streamChunks: []llm.StreamChunk{
		{Text: "Force "},
		{Text: "majeure."},
	}})

	w := postJSON(c.HandleStream, "/legal/stream", `{"text": "What is a force majeure clause?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `data: {"content":"Force "}`)
	assert.Contains(t, body, `data: {"content":"majeure."}`)
	assert.Contains(t, body, `data: {"status":"completed"}`)
}

func TestHandleStreamEscapesFrameDelimiters(t *testing.T) {
	c := newTestController(true, &stubProvider{streamChunks: []llm.StreamChunk{
		{Text: "line one\n\nline two"},
	}})

	w := postJSON(c.HandleStream, "/legal/stream", `{"text": "q"}`)

	// embedded newlines are JSON-escaped, so each frame stays a single line
	assert.Contains(t, w.Body.String(), `data: {"content":"line one\n\nline two"}`)
}

func TestHandleStreamWithoutCredentials(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	w := postJSON(c.HandleStream, "/legal/stream", `{"text": "q"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), "ANTHROPIC_API_KEY")
}

func TestRoutesCoverLegalEndpoints(t *testing.T) {
	c := newTestController(false, &stubProvider{})

	patterns := make([]string, 0, 4)
	for _, route := range c.Routes() {
		patterns = append(patterns, route.Pattern)
		assert.Equal(t, http.MethodPost, route.Method)
	}

	assert.ElementsMatch(t, []string{
		"/legal/query",
		"/legal/contract-review",
		"/legal/risk-assessment",
		"/legal/stream",
	}, patterns)
}
