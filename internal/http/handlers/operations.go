package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sudomock-connector/internal/connector"
	"sudomock-connector/internal/domain"
)

type runRequest struct {
	Items          []connector.Item `json:"items"`
	ContinueOnFail bool             `json:"continueOnFail"`
}

type runResponse struct {
	Operation string             `json:"operation"`
	Results   []connector.Result `json:"results"`
}

// RunOperation executes one operation over a batch of items. Parameterless
// operations may omit items; they run once against an empty item.
func (a *App) RunOperation(w http.ResponseWriter, r *http.Request) {
	op, err := domain.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Items) == 0 {
		req.Items = []connector.Item{{}}
	}

	results, err := a.Runner.Run(r.Context(), op, req.Items, connector.RunOptions{
		ContinueOnFail: req.ContinueOnFail,
	})
	if err != nil {
		// A parameter error never reached the remote API; the caller sent a
		// bad item.
		var paramErr *connector.ParamError
		if errors.As(err, &paramErr) {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		var itemErr *connector.ItemError
		if errors.As(err, &itemErr) {
			a.error(w, http.StatusBadGateway, "operation_failed", err.Error())
			return
		}
		a.Logger.Error().Err(err).Str("operation", op.String()).Msg("run failed")
		a.error(w, http.StatusInternalServerError, "internal", "operation run failed")
		return
	}
	a.json(w, http.StatusOK, runResponse{Operation: op.String(), Results: results})
}

// VerifyCredentials checks the configured API key against the account
// endpoint.
func (a *App) VerifyCredentials(w http.ResponseWriter, r *http.Request) {
	if err := a.Client.VerifyCredentials(r.Context()); err != nil {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
