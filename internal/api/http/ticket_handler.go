package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/service"
)

type TicketHandler struct {
	fineSvc    service.FineService
	listingSvc service.ListingService
}

func NewTicketHandler(fineSvc service.FineService, listingSvc service.ListingService) *TicketHandler {
	return &TicketHandler{fineSvc: fineSvc, listingSvc: listingSvc}
}

type createTicketRequest struct {
	Vehicle     string   `json:"vehicle"`
	Reason      string   `json:"reason"`
	Description *string  `json:"description"`
	FinesImport *float64 `json:"finesImport"`
}

type updateTicketRequest struct {
	Vehicle      *string  `json:"vehicle"`
	Reason       *string  `json:"reason"`
	Description  *string  `json:"description"`
	FinesImport  *float64 `json:"finesImport"`
	DeleteTicket bool     `json:"deleteTicker"`
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req createTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	fine, err := h.fineSvc.Create(r.Context(), service.CreateFineInput{
		VehiclePlate: req.Vehicle,
		Reason:       req.Reason,
		Description:  req.Description,
		Amount:       req.FinesImport,
	}, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain.NewAdministrationFineView(fine))
}

func (h *TicketHandler) GetOwnerView(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, domain.ViewOwner)
}

func (h *TicketHandler) GetAdministrationView(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, domain.ViewAdministration)
}

func (h *TicketHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, domain.ViewMinimal)
}

func (h *TicketHandler) read(w http.ResponseWriter, r *http.Request, mode domain.ViewMode) {
	view, err := h.fineSvc.Read(r.Context(), mux.Vars(r)["ref"], mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update applies a field patch. A patch asking for deletion answers with
// {"deleted": true} when the fine was removed instead.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req updateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	fine, deleted, err := h.fineSvc.Update(r.Context(), mux.Vars(r)["ref"], domain.FinePatch{
		VehiclePlate: req.Vehicle,
		Reason:       req.Reason,
		Description:  req.Description,
		Amount:       req.FinesImport,
		Delete:       req.DeleteTicket,
	}, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if deleted {
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
		return
	}
	writeJSON(w, http.StatusOK, domain.NewAdministrationFineView(fine))
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.fineSvc.PermanentDelete(r.Context(), mux.Vars(r)["ref"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TicketHandler) ListByOfficer(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.SelectByOfficer, "officerId")
}

func (h *TicketHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.SelectByOwner, "taxId")
}

func (h *TicketHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.SelectByVehicle, "plate")
}

func (h *TicketHandler) list(w http.ResponseWriter, r *http.Request, selector domain.FineSelector, keyVar string) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q.Selector = selector
	q.Key = mux.Vars(r)[keyVar]

	page, err := h.listingSvc.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseListQuery(r *http.Request) (service.ListQuery, error) {
	values := r.URL.Query()
	q := service.ListQuery{RequestURL: requestURL(r)}

	if v := values.Get("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return q, domain.NewValidationError("paid", "must be true or false")
		}
		q.Paid = &paid
	}
	if values.Has("reason") {
		reason := values.Get("reason")
		q.ReasonPattern = &reason
	}

	var err error
	if q.Page, err = intParam(values.Get("page"), "page"); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(values.Get("limit"), "limit"); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// requestURL rebuilds the absolute URL the client used.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
