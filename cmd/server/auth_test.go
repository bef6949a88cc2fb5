package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterCreatesUnapprovedAccount(t *testing.T) {
	srv := newTestServer(t)

	body := `{"email": "Nova@MedTrabalho.com.br", "password": "segredo123", "name": "Nova Pessoa"}`
	rec := httptest.NewRecorder()
	srv.handleRegister(rec, httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var email string
	var approved bool
	err := srv.db.QueryRow(`SELECT email, approved FROM users WHERE name = 'Nova Pessoa'`).Scan(&email, &approved)
	if err != nil {
		t.Fatalf("failed to read created user: %v", err)
	}
	if email != "nova@medtrabalho.com.br" {
		t.Fatalf("expected lowercased email, got %q", email)
	}
	if approved {
		t.Fatalf("new accounts must start unapproved")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email": "sem-arroba", "password": "segredo123", "name": "X"}`},
		{"short password", `{"email": "a@b.com", "password": "curta", "name": "X"}`},
		{"missing name", `{"email": "a@b.com", "password": "segredo123", "name": " "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.handleRegister(rec, httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(tc.body)))
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	srv := newTestServer(t)
	seedTestUser(t, srv.db, "u1", "ana@medtrabalho.com.br", "user", true)

	body := `{"email": "ana@medtrabalho.com.br", "password": "segredo123", "name": "Outra Ana"}`
	rec := httptest.NewRecorder()
	srv.handleRegister(rec, httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginFlows(t *testing.T) {
	srv := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := srv.db.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	mustExec(`INSERT INTO users (id, email, password_hash, name, role, approved)
		VALUES ('u1', 'ana@medtrabalho.com.br', ?, 'Ana', 'user', TRUE)`, string(hash))
	mustExec(`INSERT INTO users (id, email, password_hash, name, role, approved)
		VALUES ('u2', 'pendente@medtrabalho.com.br', ?, 'Pendente', 'user', FALSE)`, string(hash))

	login := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.handleLogin(rec, httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body)))
		return rec
	}

	if rec := login(`{"email": "ana@medtrabalho.com.br", "password": "errada1234"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
	if rec := login(`{"email": "ninguem@medtrabalho.com.br", "password": "segredo123"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", rec.Code)
	}
	if rec := login(`{"email": "pendente@medtrabalho.com.br", "password": "segredo123"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unapproved account, got %d", rec.Code)
	}

	rec := login(`{"email": "ana@medtrabalho.com.br", "password": "segredo123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("expected a token, got %v", resp)
	}
}
