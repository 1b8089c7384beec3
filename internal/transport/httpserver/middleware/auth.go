package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	admindomain "church-registry-go/internal/domain/admin"
	"church-registry-go/pkg/logger"
)

// TokenValidator verifies a bearer token and returns the admin id it carries.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// AdminFinder loads the admin a validated token belongs to. A token whose
// admin row was removed no longer grants access.
type AdminFinder interface {
	GetByID(ctx context.Context, id string) (*admindomain.Admin, error)
}

type JWTAuth struct {
	tokens TokenValidator
	admins AdminFinder
	log    logger.Logger
}

type contextKey int

const adminKey contextKey = iota

func NewJWTAuth(tokens TokenValidator, admins AdminFinder, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, admins: admins, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		adminID, err := a.tokens.Validate(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err)
			unauthorized(w)
			return
		}

		found, err := a.admins.GetByID(r.Context(), adminID)
		if err != nil {
			if !errors.Is(err, admindomain.ErrAdminNotFound) {
				a.log.InternalError("auth: admin lookup failed", err, "admin_id", adminID)
			}
			unauthorized(w)
			return
		}

		ctx := WithAdmin(r.Context(), found)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   "Not authorized to access this route",
	})
}

func WithAdmin(ctx context.Context, admin *admindomain.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

func AdminFromContext(ctx context.Context) (*admindomain.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(*admindomain.Admin)
	if !ok || admin == nil {
		return nil, false
	}
	return admin, true
}
