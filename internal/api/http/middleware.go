package http

import (
	"errors"
	"net/http"
	"strings"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/repository"
	"commonage-backend/internal/security"
)

// AuthMiddleware validates the bearer token from the portal gateway and
// resolves it to a local user row, provisioning one on first sign-in.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	userRepo     repository.UserRepository
}

func NewAuthMiddleware(tm security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, userRepo: userRepo}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHENTICATED", Message: err.Error()})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHENTICATED", Message: "invalid token"})
			return
		}

		actor, err := m.resolveActor(r, claims)
		if err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// resolveActor maps verified claims to a users row. The subject is the
// stable identity; the numeric user ID is ours, so tokens carrying one are
// trusted, tokens without one get a row provisioned on first sight.
func (m *AuthMiddleware) resolveActor(r *http.Request, claims *security.PortalClaims) (domain.Actor, error) {
	if claims.UserID != 0 {
		return claims.Actor(), nil
	}

	user, err := m.userRepo.GetBySubject(r.Context(), claims.Subject)
	if errors.Is(err, domain.ErrNotFound) {
		user = &domain.User{
			Subject: claims.Subject,
			Email:   claims.Email,
			Staff:   claims.Staff,
		}
		err = m.userRepo.Create(r.Context(), user)
	}
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{UserID: user.ID, Subject: user.Subject, Staff: claims.Staff}, nil
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization token is not provided")
	}
	if len(authHeader) > 7 && strings.EqualFold(authHeader[0:7], "BEARER ") {
		return authHeader[7:], nil
	}
	return authHeader, nil
}

// requireStaff guards admin routes. The actor must already be authenticated.
func requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHENTICATED", Message: "no authenticated actor"})
			return
		}
		if !actor.Staff {
			writeError(w, domain.ErrForbidden)
			return
		}
		next(w, r)
	}
}
