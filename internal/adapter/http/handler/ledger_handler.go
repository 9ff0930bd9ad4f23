package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhost/ledger/internal/adapter/http/dto"
	"github.com/fundhost/ledger/internal/usecase"
)

// LedgerHandler handles ledger-wide operations: reconciliation and exports.
type LedgerHandler struct {
	consistencyUC *usecase.ConsistencyUseCase
	exportUC      *usecase.ExportUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(consistencyUC *usecase.ConsistencyUseCase, exportUC *usecase.ExportUseCase) *LedgerHandler {
	return &LedgerHandler{
		consistencyUC: consistencyUC,
		exportUC:      exportUC,
	}
}

// CheckConsistency reconciles every entry group and reports imbalances.
// A consistent ledger answers 200, an inconsistent one 409 with the details.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.consistencyUC.CheckGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	resp := dto.ConsistencyReportFromUseCase(report)
	status := http.StatusOK
	if !resp.Consistent {
		status = http.StatusConflict
	}
	writeJSON(w, status, resp)
}

// CheckGroup reconciles a single entry group.
func (h *LedgerHandler) CheckGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	imbalance, err := h.consistencyUC.CheckGroup(r.Context(), groupID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check entry group", err.Error())
		return
	}

	if imbalance == nil {
		writeJSON(w, http.StatusOK, map[string]any{"group_id": groupID, "consistent": true})
		return
	}
	writeJSON(w, http.StatusConflict, dto.GroupImbalanceResponse{
		GroupID:  imbalance.GroupID,
		Legs:     imbalance.Legs,
		Drift:    imbalance.Drift,
		Currency: imbalance.Currency,
	})
}

// ExportAccountLedger streams an account's ledger as CSV.
func (h *LedgerHandler) ExportAccountLedger(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ledger-"+accountID+".csv"))

	if err := h.exportUC.ExportAccountLedger(r.Context(), accountID, w); err != nil {
		// Headers may already be out; best effort.
		status := mapDomainError(err)
		writeError(w, status, "failed to export ledger", err.Error())
		return
	}
}
