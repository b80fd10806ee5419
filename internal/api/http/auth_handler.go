package http

import (
	"net/http"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	Role        domain.Role   `json:"role,omitempty"`
	Roles       []domain.Role `json:"roles"`
	Name        string        `json:"name"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, r, domain.NewValidationError("credentials", "username and password are required"))
		return
	}

	token, account, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := loginResponse{AccessToken: token, Roles: account.Roles, Name: account.Name}
	if len(account.Roles) > 0 {
		resp.Role = account.Roles[0]
	}
	writeJSON(w, http.StatusOK, resp)
}
