package http

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/service"
)

// FinesHandler serves the accounting ledger.
type FinesHandler struct {
	ledgerSvc service.LedgerService
	reconSvc  service.ReconciliationService
}

func NewFinesHandler(ledgerSvc service.LedgerService, reconSvc service.ReconciliationService) *FinesHandler {
	return &FinesHandler{ledgerSvc: ledgerSvc, reconSvc: reconSvc}
}

const maxLedgerPageSize = 100

type ledgerPage struct {
	Entries  []domain.LedgerEntry `json:"entries"`
	Total    int32                `json:"total"`
	Page     int32                `json:"page"`
	PageSize int32                `json:"pageSize"`
}

func (h *FinesHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := intParam(values.Get("page"), "page")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParam(values.Get("limit"), "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxLedgerPageSize {
		writeError(w, r, domain.NewValidationError("limit", fmt.Sprintf("must not exceed %d", maxLedgerPageSize)))
		return
	}
	if page > math.MaxInt32/limit {
		writeError(w, r, domain.NewValidationError("page", "out of range"))
		return
	}

	entries, total, err := h.ledgerSvc.ListByOwner(r.Context(), mux.Vars(r)["taxId"], int32(page), int32(limit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, ledgerPage{Entries: entries, Total: total, Page: int32(page), PageSize: int32(limit)})
}

func (h *FinesHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.ledgerSvc.GetByReference(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *FinesHandler) Pay(w http.ResponseWriter, r *http.Request) {
	entry, err := h.ledgerSvc.PayFine(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *FinesHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconSvc.Reconcile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
