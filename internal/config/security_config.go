// config/security_config.go
package config

import "traffic-fines-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// RouteSecurity is the access rule of one named route. An empty Roles list
// admits any authenticated caller.
type RouteSecurity struct {
	Level SecurityLevel
	Roles []domain.Role
}

var (
	officers   = []domain.Role{domain.RolePolice, domain.RoleAdmin, domain.RoleAdministration}
	privileged = []domain.Role{domain.RoleAdmin, domain.RoleAdministration}
)

// EndpointSecurityConfig maps route names to their access rule
var EndpointSecurityConfig = map[string]RouteSecurity{
	// Auth - Public
	"auth.login": {Level: SecurityPublic},

	// Tickets
	"ticket.create":       {Level: SecurityAccess, Roles: officers},
	"ticket.get.owner":    {Level: SecurityAccess, Roles: []domain.Role{domain.RoleUser}},
	"ticket.get.gestion":  {Level: SecurityAccess, Roles: officers},
	"ticket.get.details":  {Level: SecurityAccess},
	"ticket.update":       {Level: SecurityAccess, Roles: officers},
	"ticket.delete":       {Level: SecurityAccess, Roles: privileged},
	"ticket.list.officer": {Level: SecurityAccess, Roles: officers},
	"ticket.list.owner":   {Level: SecurityAccess},
	"ticket.list.vehicle": {Level: SecurityAccess, Roles: officers},

	// Ledger
	"fines.list.owner":     {Level: SecurityAccess},
	"fines.get":            {Level: SecurityAccess, Roles: officers},
	"fines.pay":            {Level: SecurityAccess, Roles: privileged},
	"fines.reconciliation": {Level: SecurityAccess, Roles: []domain.Role{domain.RoleAdmin}},
}

// GetRouteSecurity returns the rule for a route; unknown routes require an access token
func GetRouteSecurity(name string) RouteSecurity {
	if rule, ok := EndpointSecurityConfig[name]; ok {
		return rule
	}
	return RouteSecurity{Level: SecurityAccess}
}
