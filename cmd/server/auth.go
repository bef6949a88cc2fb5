package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medtrabalho/cotador/internal/ctxkeys"
)

const bcryptCost = 12

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Approved        bool   `json:"approved"`
	CanStandard     bool   `json:"canStandard"`
	CanInCompany    bool   `json:"canInCompany"`
	CanCredenciador bool   `json:"canCredenciador"`
	CanPsychosocial bool   `json:"canPsychosocial"`
	CreatedAt       string `json:"createdAt"`
}

// handleRegister creates a new account. Accounts start unapproved: an admin
// releases access before the first login works.
func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusUnprocessableEntity, "email inválido")
		return
	case len(req.Password) < 8:
		writeError(w, http.StatusUnprocessableEntity, "senha deve ter no mínimo 8 caracteres")
		return
	case req.Name == "":
		writeError(w, http.StatusUnprocessableEntity, "nome é obrigatório")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao criar conta")
		return
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(r.Context(), `
		INSERT INTO users (id, email, password_hash, name, role, approved)
		VALUES (?, ?, ?, ?, 'user', FALSE)
	`, id, req.Email, string(hash), req.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			writeError(w, http.StatusConflict, "já existe uma conta com este email")
			return
		}
		s.log.Error("failed to insert user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao criar conta")
		return
	}

	s.log.Info("user registered", zap.String("userId", id))
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      id,
		"message": "conta criada, aguardando aprovação de um administrador",
	})
}

// handleLogin authenticates with email and password and returns a JWT.
// Unapproved accounts are rejected with the same generic message used for
// bad credentials until an admin releases them.
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var (
		id, hash, role string
		approved       bool
	)
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, password_hash, role, approved FROM users WHERE email = ?
	`, req.Email).Scan(&id, &hash, &role, &approved)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusUnauthorized, "email ou senha inválidos")
		return
	}
	if err != nil {
		s.log.Error("failed to query credentials", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha na autenticação")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "email ou senha inválidos")
		return
	}
	if !approved {
		writeError(w, http.StatusForbidden, "conta aguardando aprovação")
		return
	}

	token, err := s.generateToken(id, role)
	if err != nil {
		s.log.Error("failed to sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha na autenticação")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleMe returns the authenticated user's profile.
func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(ctxkeys.UserID).(string)

	u, err := s.fetchUser(r, userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	if err != nil {
		s.log.Error("failed to query user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar perfil")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (s *server) fetchUser(r *http.Request, id string) (userResponse, error) {
	var u userResponse
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, email, name, role, approved,
			can_standard, can_incompany, can_credenciador, can_psychosocial,
			created_at
		FROM users WHERE id = ?
	`, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Approved,
		&u.CanStandard, &u.CanInCompany, &u.CanCredenciador, &u.CanPsychosocial,
		&u.CreatedAt,
	)
	return u, err
}

// generateToken signs a JWT carrying the user id and role, valid for 7 days.
func (s *server) generateToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
