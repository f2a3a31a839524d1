package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
)

var errNoPickupSelected = errors.New("no pickup order selected")

type CreatePickupRequest struct {
	CustomerName string `json:"customer_name"`
}

func (app *application) createPickupHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePickupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.pickup.Create(r.Context(), req.CustomerName)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listPickupHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonRespone(w, http.StatusOK, app.pickup.ActiveSessions()); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) selectedPickupHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.pickup.Selected()
	if !ok {
		app.notFoundError(w, r, errNoPickupSelected)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getPickupHandler(w http.ResponseWriter, r *http.Request) {
	session, err := app.pickup.Session(chi.URLParam(r, "order_no"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) selectPickupHandler(w http.ResponseWriter, r *http.Request) {
	session, err := app.pickup.Select(chi.URLParam(r, "order_no"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) addPickupCartHandler(w http.ResponseWriter, r *http.Request) {
	orderNo := chi.URLParam(r, "order_no")

	var req AddCartLineRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, modifiers, err := app.resolveItem(r.Context(), req)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	line, err := app.pickup.AddToCart(orderNo, item, req.Quantity, modifiers, req.Combos, req.Instructions)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, line); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getPickupCartHandler(w http.ResponseWriter, r *http.Request) {
	lines, err := app.pickup.CartLines(chi.URLParam(r, "order_no"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) setPickupCartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	orderNo := chi.URLParam(r, "order_no")

	var req SetQuantityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.pickup.SetCartQuantity(orderNo, chi.URLParam(r, "line_id"), req.Quantity); err != nil {
		app.serviceError(w, r, err)
		return
	}

	lines, err := app.pickup.CartLines(orderNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) removePickupCartLineHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.pickup.RemoveCartLine(chi.URLParam(r, "order_no"), chi.URLParam(r, "line_id")); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sendPickupKOTHandler(w http.ResponseWriter, r *http.Request) {
	record, err := app.pickup.SendToKitchen(r.Context(), chi.URLParam(r, "order_no"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, record); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) billPickupHandler(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bill, err := app.pickup.GenerateBill(r.Context(), chi.URLParam(r, "order_no"), req.Discount)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, bill); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) payPickupHandler(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.pickup.CloseWithPayment(r.Context(), chi.URLParam(r, "order_no"), req.Method, req.StaffID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) clearPickupHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.pickup.Clear(r.Context(), chi.URLParam(r, "order_no")); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
