package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// RaiseAlertRequest is the HTTP ingest path for kitchen out-of-stock
// events; the broker queue feeds the same alert service.
type RaiseAlertRequest struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name" validate:"required"`
	PortionsOut int    `json:"portions_out" validate:"required,min=-1"`
	OrderKey    string `json:"order_key"`
	TableNo     int    `json:"table_no"`
}

type AckAlertRequest struct {
	StaffName string `json:"staff_name" validate:"required"`
}

func (app *application) raiseAlertHandler(w http.ResponseWriter, r *http.Request) {
	var req RaiseAlertRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	alert := app.alerts.Raise(domain.StockEvent{
		EventType:   domain.EventItemOutStock,
		ItemID:      req.ItemID,
		ItemName:    req.ItemName,
		PortionsOut: req.PortionsOut,
		OrderKey:    req.OrderKey,
		TableNo:     req.TableNo,
		Timestamp:   time.Now(),
	})

	if req.ItemID != "" && req.PortionsOut == domain.PortionsFullyOut {
		if err := app.catalog.MarkUnavailable(r.Context(), req.ItemID); err != nil {
			app.logger.Warnw("failed to update catalog availability", "item_id", req.ItemID, "error", err)
		}
	}

	if err := app.jsonRespone(w, http.StatusCreated, alert); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listAlertsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonRespone(w, http.StatusOK, app.alerts.Pending()); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) nextAlertHandler(w http.ResponseWriter, r *http.Request) {
	alert := app.alerts.Next()
	if alert == nil {
		if err := app.jsonRespone(w, http.StatusOK, nil); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, alert); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) ackAlertHandler(w http.ResponseWriter, r *http.Request) {
	var req AckAlertRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	alert, err := app.alerts.Acknowledge(chi.URLParam(r, "alert_id"), req.StaffName)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, alert); err != nil {
		app.internalServerError(w, r, err)
	}
}
