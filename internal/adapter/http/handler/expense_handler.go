package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhost/ledger/internal/adapter/http/dto"
	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// ExpenseHandler handles expense workflow HTTP requests.
type ExpenseHandler struct {
	expenseUC *usecase.ExpenseUseCase
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create submits a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// ListByAccount lists an account's expenses, optionally filtered by status.
func (h *ExpenseHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	input := usecase.ListExpensesInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ExpenseStatus(s)
		input.Status = &status
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}

// Update edits an unpaid expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Approve moves a pending expense to APPROVED.
func (h *ExpenseHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.expenseUC.ApproveExpense)
}

// Reject moves a pending or approved expense to REJECTED.
func (h *ExpenseHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.expenseUC.RejectExpense)
}

// Pay pays an approved expense through its payout method.
func (h *ExpenseHandler) Pay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.expenseUC.PayExpense)
}

func (h *ExpenseHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*domain.Expense, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := op(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to change expense status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// ConfirmProcessing completes a deferred payout once the provider reports
// success.
func (h *ExpenseHandler) ConfirmProcessing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.ConfirmProcessingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	expense, err := h.expenseUC.ConfirmExpenseProcessing(r.Context(), id, req.Fee, req.FeeCurrency, req.ProviderReference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to confirm expense payout", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// MarkAsUnpaid reverses a paid expense's payout.
func (h *ExpenseHandler) MarkAsUnpaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.MarkUnpaidRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	expense, err := h.expenseUC.MarkExpenseAsUnpaid(r.Context(), id, req.RefundPaymentProcessorFee)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to mark expense as unpaid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete soft-deletes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
