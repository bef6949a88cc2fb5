package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medtrabalho/cotador/internal/cnpj"
	"github.com/medtrabalho/cotador/internal/ctxkeys"
	"github.com/medtrabalho/cotador/internal/money"
)

var proposalTypes = map[string]bool{
	"standard":           true,
	"incompany":          true,
	"credenciador":       true,
	"venda_avulsa_psico": true,
}

type saveProposalRequest struct {
	Type        string          `json:"type"`
	CompanyName string          `json:"companyName"`
	Contact     string          `json:"contact"`
	CNPJ        string          `json:"cnpj"`
	Detail      json.RawMessage `json:"detail"`
	Total       float64         `json:"total"`
}

type proposalListItem struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	CompanyName    string  `json:"companyName"`
	Contact        string  `json:"contact"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"totalFormatted"`
	CreatedAt      string  `json:"createdAt"`
}

type proposalDetail struct {
	proposalListItem
	CNPJ   string          `json:"cnpj"`
	Detail json.RawMessage `json:"detail"`
}

// handleHistorySave persists one finished proposal. Proposals are immutable
// after creation: the only later operation is delete.
func (s *server) handleHistorySave(w http.ResponseWriter, r *http.Request) {
	var req saveProposalRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	switch {
	case !proposalTypes[req.Type]:
		writeError(w, http.StatusUnprocessableEntity, "tipo de proposta desconhecido")
		return
	case req.CompanyName == "":
		writeError(w, http.StatusUnprocessableEntity, "nome da empresa é obrigatório")
		return
	case len(req.Detail) == 0:
		writeError(w, http.StatusUnprocessableEntity, "detalhe da proposta é obrigatório")
		return
	case req.Total < 0:
		writeError(w, http.StatusUnprocessableEntity, "total não pode ser negativo")
		return
	}

	document := ""
	if strings.TrimSpace(req.CNPJ) != "" {
		document = cnpj.Sanitize(req.CNPJ)
		if !cnpj.Valid(document) {
			writeError(w, http.StatusUnprocessableEntity, "CNPJ inválido")
			return
		}
	}

	userID, _ := r.Context().Value(ctxkeys.UserID).(string)
	id := uuid.NewString()

	_, err := s.db.ExecContext(r.Context(), `
		INSERT INTO proposals (id, user_id, type, company_name, contact, cnpj, detail_json, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, userID, req.Type, req.CompanyName, strings.TrimSpace(req.Contact),
		document, string(req.Detail), money.Round2(req.Total))
	if err != nil {
		s.log.Error("failed to insert proposal", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao salvar proposta")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleHistoryList returns the caller's proposals, newest first, optionally
// filtered by ?q= over company name and contact. Admins see everyone's.
func (s *server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(ctxkeys.UserID).(string)
	role, _ := r.Context().Value(ctxkeys.UserRole).(string)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.listProposals(r, userID, role, query)
	if err != nil {
		s.log.Error("failed to list proposals", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar histórico")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *server) listProposals(r *http.Request, userID, role, query string) ([]proposalListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, type, company_name, contact, total, created_at
		FROM proposals
		WHERE (? = 'admin' OR user_id = ?)
		  AND (? = '' OR company_name LIKE ? OR contact LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, role, userID, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]proposalListItem, 0)
	for rows.Next() {
		var item proposalListItem
		if err := rows.Scan(&item.ID, &item.Type, &item.CompanyName, &item.Contact, &item.Total, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.TotalFormatted = money.FormatBRL(item.Total)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// handleHistoryDetail returns one proposal with its full detail payload.
// Non-admins only reach their own; anything else is a 404, not a 403, so ids
// cannot be probed.
func (s *server) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(ctxkeys.UserID).(string)
	role, _ := r.Context().Value(ctxkeys.UserRole).(string)
	id := chi.URLParam(r, "id")

	var item proposalDetail
	var detail string
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, type, company_name, contact, cnpj, detail_json, total, created_at
		FROM proposals
		WHERE id = ? AND (? = 'admin' OR user_id = ?)
	`, id, role, userID).Scan(
		&item.ID, &item.Type, &item.CompanyName, &item.Contact,
		&item.CNPJ, &detail, &item.Total, &item.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "proposta não encontrada")
		return
	}
	if err != nil {
		s.log.Error("failed to query proposal", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao carregar proposta")
		return
	}

	item.Detail = json.RawMessage(detail)
	item.TotalFormatted = money.FormatBRL(item.Total)
	writeJSON(w, http.StatusOK, item)
}

// handleHistoryDelete removes one proposal, scoped the same way as detail.
func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(ctxkeys.UserID).(string)
	role, _ := r.Context().Value(ctxkeys.UserRole).(string)
	id := chi.URLParam(r, "id")

	result, err := s.db.ExecContext(r.Context(), `
		DELETE FROM proposals
		WHERE id = ? AND (? = 'admin' OR user_id = ?)
	`, id, role, userID)
	if err != nil {
		s.log.Error("failed to delete proposal", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao excluir proposta")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.log.Error("failed to delete proposal", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "falha ao excluir proposta")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "proposta não encontrada")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
