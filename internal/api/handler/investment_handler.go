package handler

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/api/middleware"
	"fintrack/internal/app/service"
	"fintrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

func NewInvestmentHandler(is *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: is}
}

func (h *InvestmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{investmentID}", h.get)
	r.Put("/{investmentID}", h.update)
	r.Delete("/{investmentID}", h.delete)
}

func (h *InvestmentHandler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := h.investmentService.Create(r.Context(), principal, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, inv)
}

func (h *InvestmentHandler) list(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	investments, err := h.investmentService.List(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, investments)
}

func (h *InvestmentHandler) get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "investmentID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid investment id")
		return
	}

	inv, err := h.investmentService.Get(r.Context(), principal, id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, inv)
}

func (h *InvestmentHandler) update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "investmentID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid investment id")
		return
	}

	var req service.UpdateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := h.investmentService.Update(r.Context(), principal, id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, inv)
}

func (h *InvestmentHandler) delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := pathID(r, "investmentID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid investment id")
		return
	}

	if err := h.investmentService.Delete(r.Context(), principal, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
