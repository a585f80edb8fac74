package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/varunisrani/legal/agent"
	"github.com/varunisrani/legal/appconfig"
	"github.com/varunisrani/legal/middleware"
)

// MetadataController serves the health check and the root service listing.
type MetadataController struct {
	agent *agent.LegalAgent
}

func ProvideMetadataController(legalAgent *agent.LegalAgent) *MetadataController {
	return &MetadataController{agent: legalAgent}
}

func (mc *MetadataController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	cfg := appconfig.ResolveProvider()

	setup := "Ready for legal analysis"
	if !cfg.Configured() {
		setup = "Set ANTHROPIC_API_KEY environment variable"
	}

	writeJSON(w, map[string]any{
		"status":            "healthy",
		"provider":          "anthropic",
		"configured":        cfg.Configured(),
		"api_key_set":       cfg.APIKey != "",
		"oauth_mode":        cfg.OAuthMode,
		"queries_processed": mc.agent.QueriesProcessed(),
		"timestamp":         time.Now().Format(time.RFC3339),
		"setup_required":    setup,
	})
}

func (mc *MetadataController) HandleRoot(w http.ResponseWriter, r *http.Request) {
	cfg := appconfig.ResolveProvider()

	response := map[string]any{
		"message":    "Legal Agent API",
		"status":     "running",
		"configured": cfg.Configured(),
		"endpoints": map[string]string{
			"health":          "/health",
			"legal_query":     "/legal/query",
			"contract_review": "/legal/contract-review",
			"risk_assessment": "/legal/risk-assessment",
			"streaming":       "/legal/stream",
			"disclaimer":      "/disclaimer",
		},
	}

	if cfg.Configured() {
		response["setup_instructions"] = map[string]string{
			"status": "Ready for professional legal analysis",
			"note":   "All endpoints are fully functional",
		}
	} else {
		response["setup_instructions"] = map[string]string{
			"step_1": "Set the ANTHROPIC_API_KEY environment variable",
			"step_2": "Get an API key from https://console.anthropic.com/",
			"step_3": "Restart the service after adding the key",
			"note":   "The API responds with setup guidance until configured",
		}
	}

	writeJSON(w, response)
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Note: Can't call http.Error here as headers may already be written
		return
	}
}

func (mc *MetadataController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/health",
			Method:  http.MethodGet,
			Handler: middleware.CORSMiddleware(mc.HandleHealth),
		},
		{
			Pattern: "/",
			Method:  http.MethodGet,
			Handler: middleware.CORSMiddleware(mc.HandleRoot),
		},
	}
}
