// Package middleware provides HTTP middleware for authentication,
// authorization, and abuse protection.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medtrabalho/cotador/internal/ctxkeys"
)

// Auth validates the JWT from the Authorization header and injects the
// user's id and role into the request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "cabeçalho Authorization é obrigatório")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "formato inválido, use: Bearer <token>")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeError(w, http.StatusUnauthorized, "claims inválidas")
				return
			}

			userID, _ := claims["userId"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "token sem identificação de usuário")
				return
			}

			ctx := context.WithValue(r.Context(), ctxkeys.UserID, userID)
			ctx = context.WithValue(ctx, ctxkeys.UserRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin restricts a route to admin users. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(ctxkeys.UserRole).(string)
		if role != "admin" {
			writeError(w, http.StatusForbidden, "acesso restrito a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Capability names a per-feature access flag stored on the user record.
type Capability string

const (
	CapStandard     Capability = "can_standard"
	CapInCompany    Capability = "can_incompany"
	CapCredenciador Capability = "can_credenciador"
	CapPsychosocial Capability = "can_psychosocial"
)

// RequireCapability restricts a route to users whose capability flag is set.
// Admins bypass the flag. The lookup hits the database so an admin revocation
// takes effect immediately, not on the next token refresh.
func RequireCapability(db *sql.DB, cap Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(ctxkeys.UserRole).(string)
			if role == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := r.Context().Value(ctxkeys.UserID).(string)

			var allowed bool
			// cap is one of the constants above, never caller input.
			query := `SELECT ` + string(cap) + ` FROM users WHERE id = ? AND approved = TRUE`
			err := db.QueryRowContext(r.Context(), query, userID).Scan(&allowed)
			if err != nil || !allowed {
				writeError(w, http.StatusForbidden, "funcionalidade não liberada para este usuário")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
