package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"tok"}`))
	})
	mux.HandleFunc("/api/v1/houses", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Not authorized to access this route"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"h1","name":"Oak Hall","slug":"oak-hall"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func typeLine(t *testing.T, m tea.Model, text string) (tea.Model, tea.Cmd) {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestWizardPublishesHouse(t *testing.T) {
	srv := fakeAPI(t)
	var m tea.Model = initialModel(newAPIClient(srv.URL))

	m, _ = typeLine(t, m, "pat@example.com")
	m, cmd := typeLine(t, m, "secret1")
	require.NotNil(t, cmd)
	assert.Equal(t, stepLoggingIn, m.(model).step)

	m, _ = m.Update(cmd())
	assert.Equal(t, stepEnteringName, m.(model).step)
	assert.Equal(t, "tok", m.(model).token)

	m, _ = typeLine(t, m, "Oak Hall")
	m, _ = typeLine(t, m, "1 Main St")
	m, cmd = typeLine(t, m, "Quiet")
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	assert.Equal(t, stepComplete, m.(model).step)
	assert.Contains(t, m.View(), "oak-hall")
}

func TestWizardLoginFailureReturnsToEmail(t *testing.T) {
	srv := fakeAPI(t)
	var m tea.Model = initialModel(newAPIClient(srv.URL))

	m, _ = typeLine(t, m, "pat@example.com")
	m, cmd := typeLine(t, m, "wrong")
	m, _ = m.Update(cmd())

	assert.Equal(t, stepEnteringEmail, m.(model).step)
	assert.Contains(t, m.View(), "Invalid credentials")
}

func TestWizardIgnoresEmptyInput(t *testing.T) {
	var m tea.Model = initialModel(newAPIClient("http://unused"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stepEnteringEmail, m.(model).step)
}
