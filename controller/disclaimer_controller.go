package controller

import (
	"html/template"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/varunisrani/legal/middleware"
	"github.com/varunisrani/legal/templates"
	"go.uber.org/zap"
)

type DisclaimerController struct {
}

func ProvideDisclaimerController() *DisclaimerController {
	return &DisclaimerController{}
}

func (dc *DisclaimerController) HandleDisclaimer(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templates.FS, "disclaimer.html")
	if err != nil {
		logger.Error("Failed to parse disclaimer template", zap.Error(err))
		http.Error(w, "Failed to load disclaimer", http.StatusInternalServerError)
		return
	}

	data := struct {
		LastUpdated string
	}{
		LastUpdated: time.Now().Format("January 2006"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("Failed to execute disclaimer template", zap.Error(err))
		// Note: Can't call http.Error here as headers may already be written
		return
	}
}

func (dc *DisclaimerController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/disclaimer",
			Method:  http.MethodGet,
			Handler: middleware.CORSMiddleware(dc.HandleDisclaimer),
		},
	}
}
