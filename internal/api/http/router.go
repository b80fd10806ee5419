package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Auth    *AuthHandler
	Tickets *TicketHandler
	Fines   *FinesHandler
}

// NewRouter registers every named route under prefix. Route names are the
// keys of the route security table.
func NewRouter(h Handlers, auth *AuthMiddleware, prefix string, timeout time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	api := router.PathPrefix(prefix).Subrouter()
	api.Use(TimeoutMiddleware(timeout))
	api.Use(auth.Handler)

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")

	api.HandleFunc("/ticket", h.Tickets.Create).Methods(http.MethodPost).Name("ticket.create")
	api.HandleFunc("/ticket/fine/gestion/{ref}", h.Tickets.GetAdministrationView).Methods(http.MethodGet).Name("ticket.get.gestion")
	api.HandleFunc("/ticket/fine/details/{ref}", h.Tickets.GetDetails).Methods(http.MethodGet).Name("ticket.get.details")
	api.HandleFunc("/ticket/fine/{ref}", h.Tickets.GetOwnerView).Methods(http.MethodGet).Name("ticket.get.owner")
	api.HandleFunc("/ticket/police/{officerId}", h.Tickets.ListByOfficer).Methods(http.MethodGet).Name("ticket.list.officer")
	api.HandleFunc("/ticket/owner/{taxId}", h.Tickets.ListByOwner).Methods(http.MethodGet).Name("ticket.list.owner")
	api.HandleFunc("/ticket/vehicle/{plate}", h.Tickets.ListByVehicle).Methods(http.MethodGet).Name("ticket.list.vehicle")
	api.HandleFunc("/ticket/{ref}", h.Tickets.Update).Methods(http.MethodPatch).Name("ticket.update")
	api.HandleFunc("/ticket/{ref}", h.Tickets.Delete).Methods(http.MethodDelete).Name("ticket.delete")

	api.HandleFunc("/fines/reconciliation", h.Fines.Reconcile).Methods(http.MethodGet).Name("fines.reconciliation")
	api.HandleFunc("/fines/owner/{taxId}", h.Fines.ListByOwner).Methods(http.MethodGet).Name("fines.list.owner")
	api.HandleFunc("/fines/{ref}", h.Fines.Get).Methods(http.MethodGet).Name("fines.get")
	api.HandleFunc("/fines/{ref}/pay", h.Fines.Pay).Methods(http.MethodPost).Name("fines.pay")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return router
}
