package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := app.storage.Ping(r.Context()); err != nil {
		dbStatus = "error"
	}

	lanStatus := "disabled"
	if app.peers != nil {
		lanStatus = "ok"
	}

	resp := HealthResponse{
		Status:    "ok",
		Version:   version,
		Timestamp: time.Now(),
		Services: map[string]string{
			"mongodb": dbStatus,
			"queue":   "ok",
			"lan":     lanStatus,
		},
	}

	if dbStatus != "ok" {
		resp.Status = "degraded"
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
