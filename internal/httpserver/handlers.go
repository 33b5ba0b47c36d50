package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	domain "authgate/backend/internal/domain/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/api/auth/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/auth/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/api/auth/verify", http.HandlerFunc(s.handleVerify))

	authenticated := s.authMiddleware
	s.router.Handle("/api/auth/protected", authenticated(http.HandlerFunc(s.handleProtected)))
	s.router.Handle("/api/auth/me", authenticated(http.HandlerFunc(s.handleMe)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if _, err := s.authService.Register(r.Context(), payload.Username, payload.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("register failed", "error", err)
			writeServerError(w)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := s.authService.Login(r.Context(), domain.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		default:
			s.logger.Error("login failed", "error", err)
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "No token provided. Access denied.")
		return
	}

	claims, err := s.authService.VerifyToken(token)
	if err != nil {
		s.logTokenRejection(r, err)
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"valid":   false,
			"message": "Invalid or expired token",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user": map[string]any{
			"id":  claims.UserID,
			"iat": claims.IssuedAt.Unix(),
			"exp": claims.ExpiresAt.Unix(),
		},
	})
}

func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the protected route!",
		"userId":  userID,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := s.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
		} else {
			s.logger.Error("user lookup failed", "error", err)
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":        user.ID,
			"username":  user.Username,
			"createdAt": user.CreatedAt,
		},
	})
}

// authMiddleware gates protected routes behind a valid bearer token and
// stashes the token subject in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token provided. Access denied.")
			return
		}

		claims, err := s.authService.VerifyToken(token)
		if err != nil {
			s.logTokenRejection(r, err)
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logTokenRejection records whether a token was expired or invalid. The two
// cases share one external response but stay distinguishable in logs.
func (s *Server) logTokenRejection(r *http.Request, err error) {
	reason := "invalid"
	if errors.Is(err, domain.ErrTokenExpired) {
		reason = "expired"
	}
	s.logger.Warn("token rejected", "path", r.URL.Path, "reason", reason)
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID{}).(string)
	return id, ok && id != ""
}

type ctxKeyUserID struct{}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
