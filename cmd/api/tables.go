package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

var ErrInvalidTableNo = errors.New("invalid table number")

type OpenTableRequest struct {
	Guests int `json:"guests" validate:"required,min=1"`
}

type BillRequest struct {
	Discount float64 `json:"discount" validate:"omitempty,gte=0"`
}

type PaymentRequest struct {
	Method  string `json:"method" validate:"required,oneof=cash card upi"`
	StaffID string `json:"staff_id"`
}

func tableNoParam(r *http.Request) (int, error) {
	tableNo, err := strconv.Atoi(chi.URLParam(r, "table_no"))
	if err != nil || tableNo < 1 {
		return 0, ErrInvalidTableNo
	}
	return tableNo, nil
}

func (app *application) openTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OpenTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.tables.OpenTable(r.Context(), tableNo, req.Guests)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listTablesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonRespone(w, http.StatusOK, app.tables.ActiveSessions()); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.tables.Session(tableNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) addTableCartHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

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

	line, err := app.tables.AddToCart(tableNo, item, req.Quantity, modifiers, req.Combos, req.Instructions)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, line); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getTableCartHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lines, err := app.tables.CartLines(tableNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) setTableCartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SetQuantityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.SetCartQuantity(tableNo, chi.URLParam(r, "line_id"), req.Quantity); err != nil {
		app.serviceError(w, r, err)
		return
	}

	lines, err := app.tables.CartLines(tableNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) removeTableCartLineHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.RemoveCartLine(tableNo, chi.URLParam(r, "line_id")); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sendTableKOTHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	record, err := app.tables.SendToKitchen(r.Context(), tableNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, record); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) canBillTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	canBill, err := app.tables.CanBill(tableNo)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, map[string]bool{"can_bill": canBill}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) billTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req BillRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bill, err := app.tables.GenerateBill(r.Context(), tableNo, req.Discount)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, bill); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) payTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req PaymentRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.CloseWithPayment(r.Context(), tableNo, req.Method, req.StaffID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) clearTableHandler(w http.ResponseWriter, r *http.Request) {
	tableNo, err := tableNoParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.ClearTable(r.Context(), tableNo); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) clearAllTablesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.tables.ClearAllTables(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
