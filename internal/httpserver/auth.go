package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	cookieName   = "solver_token"
	adminSubject = "admin"
)

type ctxSubjectKey struct{}

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the admin password for a signed JWT, returned in the
// body and as an HttpOnly cookie.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Auth.AdminPasswordHash == "" {
		writeError(w, http.StatusServiceUnavailable, "auth_disabled")
		return
	}
	var body tokenReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !checkPassword(s.cfg.Auth.AdminPasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}
	tok, exp, err := s.signJWT(adminSubject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// signJWT creates an HS256 JWT for subject, valid for the configured TTL.
func (s *Server) signJWT(subject string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.Auth.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.cfg.Auth.JWTSecret))
	return ss, exp, err
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireAuth enforces a valid admin JWT and puts its subject in the context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerOrCookie(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return []byte(s.cfg.Auth.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil || !token.Valid || claims.Subject != adminSubject {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSubjectKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
