package handler

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/api/middleware"
	"fintrack/internal/app/service"
	"fintrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(es *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

func (h *ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list) // supports ?category= filter
	r.Post("/", h.create)
	r.Get("/{expenseID}", h.get)
	r.Put("/{expenseID}", h.update)
	r.Delete("/{expenseID}", h.delete)
}

func (h *ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	exp, err := h.expenseService.Create(r.Context(), principal, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, exp)
}

func (h *ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	expenses, err := h.expenseService.List(r.Context(), principal, r.URL.Query().Get("category"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "expenseID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	exp, err := h.expenseService.Get(r.Context(), principal, id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, exp)
}

func (h *ExpenseHandler) update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "expenseID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req service.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	exp, err := h.expenseService.Update(r.Context(), principal, id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, exp)
}

func (h *ExpenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "expenseID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.expenseService.Delete(r.Context(), principal, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
