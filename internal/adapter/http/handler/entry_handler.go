package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhost/ledger/internal/adapter/http/dto"
	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	ledgerUC  *usecase.LedgerUseCase
	refundUC  *usecase.RefundUseCase
	accountUC AccountService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(ledgerUC *usecase.LedgerUseCase, refundUC *usecase.RefundUseCase, accountUC AccountService) *EntryHandler {
	return &EntryHandler{
		ledgerUC:  ledgerUC,
		refundUC:  refundUC,
		accountUC: accountUC,
	}
}

// Create records an economic event as a balanced entry group and returns the
// primary entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	from, err := h.accountUC.GetAccount(r.Context(), req.FromAccountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to resolve from account", err.Error())
		return
	}
	to, err := h.accountUC.GetAccount(r.Context(), req.ToAccountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to resolve to account", err.Error())
		return
	}

	var host *domain.Account
	if req.HostAccountID != nil {
		host, err = h.accountUC.GetAccount(r.Context(), *req.HostAccountID)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to resolve host account", err.Error())
			return
		}
	}

	entry, err := h.ledgerUC.CreateDoubleEntry(r.Context(), req.ToIntent(from, to, host))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// GetGroup retrieves all legs of an entry group, voided legs included.
func (h *EntryHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	entries, err := h.ledgerUC.GetEntryGroup(r.Context(), groupID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry group", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// VoidGroup tombstones every leg of an entry group.
func (h *EntryHandler) VoidGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	if err := h.ledgerUC.VoidEntryGroup(r.Context(), groupID); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to void entry group", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "voided", "group_id": groupID})
}

// Refund creates the inverse entry group for an entry.
func (h *EntryHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	// The body is optional; an empty one refunds with the processor keeping
	// its fee.
	var req dto.RefundEntryRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	refund, err := h.refundUC.RefundEntry(r.Context(), id, req.ProcessorFeeRefund)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to refund entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(refund))
}
