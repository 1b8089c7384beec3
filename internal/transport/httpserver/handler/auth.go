package handler

import (
	"errors"
	"net/http"
	"time"

	admindomain "church-registry-go/internal/domain/admin"
	"church-registry-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type adminProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.log.Warn("auth.login: missing credentials", "email", req.Email)
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	found, token, err := h.Admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admindomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "email", req.Email)
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.respondUnhandled(w, "auth.login: login failed", err, "email", req.Email)
		return
	}

	h.log.Info("auth.login: admin logged in", "admin_id", found.ID, "email", found.Email)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: adminResponse{
			ID:    found.ID,
			Name:  found.Name,
			Email: found.Email,
		},
		Token: token,
	})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	adm, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	profile, err := h.Admins.GetByID(r.Context(), adm.ID)
	if err != nil {
		if errors.Is(err, admindomain.ErrAdminNotFound) {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		h.respondUnhandled(w, "auth.me: get admin failed", err, "admin_id", adm.ID)
		return
	}

	writeData(w, http.StatusOK, adminProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	})
}
