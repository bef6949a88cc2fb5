package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/medtrabalho/cotador/internal/ctxkeys"
)

// handleUsersList returns every account, pending approvals included, so the
// admin screen can release and revoke access.
func (s *server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, email, name, role, approved,
			can_standard, can_incompany, can_credenciador, can_psychosocial,
			created_at
		FROM users
		ORDER BY datetime(created_at) DESC, id DESC
	`)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar usuários")
		return
	}
	defer rows.Close()

	users := make([]userResponse, 0)
	for rows.Next() {
		var u userResponse
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Role, &u.Approved,
			&u.CanStandard, &u.CanInCompany, &u.CanCredenciador, &u.CanPsychosocial,
			&u.CreatedAt,
		); err != nil {
			s.log.Error("failed to list users", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "falha ao carregar usuários")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar usuários")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

type approveRequest struct {
	Approved bool `json:"approved"`
}

// handleUserApprove flips the approved flag. Revoking approval locks the
// account out of new logins; tokens already issued expire on their own.
func (s *server) handleUserApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req approveRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	result, err := s.db.ExecContext(r.Context(), `
		UPDATE users SET approved = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, req.Approved, id)
	if err != nil {
		s.log.Error("failed to update approval", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao atualizar usuário")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	s.log.Info("user approval changed",
		zap.String("userId", id), zap.Bool("approved", req.Approved))
	s.respondWithUser(w, r, id)
}

type accessRequest struct {
	CanStandard     bool `json:"canStandard"`
	CanInCompany    bool `json:"canInCompany"`
	CanCredenciador bool `json:"canCredenciador"`
	CanPsychosocial bool `json:"canPsychosocial"`
}

// handleUserAccess replaces the four calculator capability flags in one shot.
// Flags are read live on every gated request, so revocation takes effect
// immediately.
func (s *server) handleUserAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req accessRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	result, err := s.db.ExecContext(r.Context(), `
		UPDATE users SET
			can_standard = ?, can_incompany = ?,
			can_credenciador = ?, can_psychosocial = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, req.CanStandard, req.CanInCompany, req.CanCredenciador, req.CanPsychosocial, id)
	if err != nil {
		s.log.Error("failed to update access flags", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao atualizar usuário")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	s.respondWithUser(w, r, id)
}

// handleUserDelete removes an account and, via the foreign key cascade, its
// proposals. Admins cannot delete themselves.
func (s *server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	callerID, _ := r.Context().Value(ctxkeys.UserID).(string)
	if id == callerID {
		writeError(w, http.StatusUnprocessableEntity, "não é possível excluir a própria conta")
		return
	}

	result, err := s.db.ExecContext(r.Context(), `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		s.log.Error("failed to delete user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao excluir usuário")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	s.log.Info("user deleted", zap.String("userId", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) respondWithUser(w http.ResponseWriter, r *http.Request, id string) {
	u, err := s.fetchUser(r, id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	if err != nil {
		s.log.Error("failed to query user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar usuário")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
