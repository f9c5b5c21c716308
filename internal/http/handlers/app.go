package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"sudomock-connector/internal/connector"
	"sudomock-connector/internal/providers/sudomock"
)

// App bundles the handler dependencies: the operation runner and the API
// client used for credential checks.
type App struct {
	Runner *connector.Runner
	Client *sudomock.Client
	Logger zerolog.Logger
}

func NewApp(runner *connector.Runner, client *sudomock.Client, logger zerolog.Logger) *App {
	return &App{Runner: runner, Client: client, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
