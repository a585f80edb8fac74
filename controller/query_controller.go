package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/varunisrani/legal/agent"
	"github.com/varunisrani/legal/middleware"
	"github.com/varunisrani/legal/model"
	"go.uber.org/zap"
)

// QueryController handles the /legal endpoints.
type QueryController struct {
	agent *agent.LegalAgent
}

// ProvideQueryController creates a new QueryController instance.
func ProvideQueryController(legalAgent *agent.LegalAgent) *QueryController {
	return &QueryController{agent: legalAgent}
}

// HandleQuery handles POST /legal/query, the general legal analysis path.
func (c *QueryController) HandleQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	c.respond(w, r, req)
}

// HandleContractReview handles POST /legal/contract-review. It rewrites the
// request with the contract-review label and defaults, then forwards to the
// same pipeline as HandleQuery.
func (c *QueryController) HandleContractReview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	c.respond(w, r, agent.ContractReviewRequest(req))
}

// HandleRiskAssessment handles POST /legal/risk-assessment.
func (c *QueryController) HandleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	c.respond(w, r, agent.RiskAssessmentRequest(req))
}

// HandleStream handles POST /legal/stream: the same pipeline, but provider
// text increments are forwarded as Server-Sent Events. Frame payloads are
// JSON-encoded, so provider text cannot break the framing.
func (c *QueryController) HandleStream(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// in-flight provider calls run to completion even if the client leaves
	ctx := context.WithoutCancel(r.Context())

	for event := range c.agent.StreamQuery(ctx, req) {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("Failed to encode stream event", zap.Error(err))
			continue
		}

		if _, err := w.Write(append(append([]byte("data: "), payload...), '\n', '\n')); err != nil {
			// client went away; keep draining so the provider call finishes
			logger.Info("stream client disconnected", zap.Error(err))
			continue
		}
		flusher.Flush()
	}
}

func (c *QueryController) respond(w http.ResponseWriter, r *http.Request, req model.LegalQueryRequest) {
	response := c.agent.ProcessQuery(context.WithoutCancel(r.Context()), req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		// Note: Can't call http.Error here as headers may already be written
		return
	}

	logger.Info("Query processed successfully",
		zap.String("queryId", response.QueryID),
		zap.Float64("processingTimeSeconds", response.ProcessingTimeSeconds))
}

// decodeQueryRequest parses and validates the shared request payload. It
// writes the 400 response itself and returns ok=false on rejection.
func decodeQueryRequest(w http.ResponseWriter, r *http.Request) (model.LegalQueryRequest, bool) {
	var req model.LegalQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return req, false
	}

	if req.Text == "" {
		http.Error(w, "Query text is required", http.StatusBadRequest)
		return req, false
	}

	return req, true
}

func (c *QueryController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/legal/query",
			Method:  http.MethodPost,
			Handler: middleware.CORSMiddleware(c.HandleQuery),
		},
		{
			Pattern: "/legal/contract-review",
			Method:  http.MethodPost,
			Handler: middleware.CORSMiddleware(c.HandleContractReview),
		},
		{
			Pattern: "/legal/risk-assessment",
			Method:  http.MethodPost,
			Handler: middleware.CORSMiddleware(c.HandleRiskAssessment),
		},
		{
			Pattern: "/legal/stream",
			Method:  http.MethodPost,
			Handler: middleware.CORSMiddleware(c.HandleStream),
		},
	}
}
