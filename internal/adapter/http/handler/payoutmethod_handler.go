package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhost/ledger/internal/adapter/http/dto"
	"github.com/fundhost/ledger/internal/usecase"
)

// PayoutMethodHandler handles payout method HTTP requests.
type PayoutMethodHandler struct {
	payoutUC *usecase.PayoutMethodUseCase
}

// NewPayoutMethodHandler creates a new PayoutMethodHandler.
func NewPayoutMethodHandler(payoutUC *usecase.PayoutMethodUseCase) *PayoutMethodHandler {
	return &PayoutMethodHandler{payoutUC: payoutUC}
}

// Create registers a payout method for an account.
func (h *PayoutMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePayoutMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	method, err := h.payoutUC.CreatePayoutMethod(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create payout method", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PayoutMethodFromDomain(method))
}

// Get retrieves a payout method by ID.
func (h *PayoutMethodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payout method ID", "")
		return
	}

	method, err := h.payoutUC.GetPayoutMethod(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get payout method", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayoutMethodFromDomain(method))
}

// ListByAccount lists an account's payout methods.
func (h *PayoutMethodHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	methods, err := h.payoutUC.ListPayoutMethods(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list payout methods", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayoutMethodsFromDomain(methods))
}
