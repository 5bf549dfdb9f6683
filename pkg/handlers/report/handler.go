package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/test-atlas/pkg/models/api"
	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/de-tools/test-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/test-atlas/pkg/services/config"
	reportsvc "github.com/de-tools/test-atlas/pkg/services/report"
	"github.com/de-tools/test-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// RunReport accepts a partial config document, runs the full pipeline and
// responds with the overview metrics plus the files written.
func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	cfg, err := config.ResolveMap(doc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := config.Validate(cfg); err != nil {
		resp := api.ErrorResponse{Error: err.Error()}
		var confErr *domain.ConfigurationError
		if errors.As(err, &confErr) {
			resp.Violations = confErr.Violations
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	creds, err := client.CredentialsFromEnv(cfg.Credentials.UsernameEnv, cfg.Credentials.AccessKeyEnv)
	if err != nil {
		logger.Error().Err(err).Msg("credentials missing")
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	rep, err := reportsvc.NewRunner(cfg, creds).Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("report run failed")
		writeJSON(w, http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	files, err := export.NewWriter(cfg.Output).Write(rep)
	if err != nil {
		logger.Error().Err(err).Msg("failed to write report files")
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp := api.RunReportResponse{Files: files}
	for _, row := range rep.Section(domain.SectionOverview) {
		name, _ := row.Value("metric").(string)
		value, _ := row.Value("value").(float64)
		resp.Overview = append(resp.Overview, api.Metric{Name: name, Value: value})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
