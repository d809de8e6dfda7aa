package provision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPapertrailProvider(t *testing.T) {
	var received = map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok || user != "distributor" || password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		require.NoError(t, r.ParseForm())
		for k := range r.PostForm {
			received[k] = r.PostForm.Get(k)
		}
		switch r.URL.Path {
		case "/accounts":
			if r.PostForm.Get("name") == "taken" {
				_, _ = w.Write([]byte(`{"message":"name already taken"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"pt-42","api_token":"abc"}`))
		case "/systems":
			_, _ = w.Write([]byte(`{"id":"sys-1","name":"logs","syslog":{"hostname":"logs1.papertrailapp.com","port":40000}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	provider := NewPapertrailProvider(&PapertrailConfig{
		AccountsURL: server.URL + "/accounts",
		LoggersURL:  server.URL + "/systems",
		User:        "distributor",
		Password:    "secret",
	}, server.Client())

	account, err := provider.CreateAccount(ctx, &AccountRequest{ID: "alice", Name: "alice", Email: "alice@example.com", Plan: "free"})
	require.NoError(t, err)
	assert.Equal(t, "pt-42", account.ID)
	assert.Equal(t, "abc", account.APIToken)
	assert.Equal(t, "alice@example.com", received["user[email]"])
	assert.Equal(t, "free", received["plan"])

	_, err = provider.CreateAccount(ctx, &AccountRequest{Name: "taken"})
	assert.ErrorIs(t, err, ErrRefused)
	assert.Contains(t, err.Error(), "name already taken")

	logger, err := provider.CreateLogger(ctx, &LoggerRequest{ID: "x", Name: "logs", AccountID: "pt-42"})
	require.NoError(t, err)
	assert.Equal(t, "logs1.papertrailapp.com", logger.Syslog.Hostname)
	assert.Equal(t, 40000, logger.Syslog.Port)
	assert.Equal(t, "pt-42", received["account_id"])

	unauthorized := NewPapertrailProvider(&PapertrailConfig{AccountsURL: server.URL + "/accounts"}, nil)
	_, err = unauthorized.CreateAccount(ctx, &AccountRequest{Name: "alice"})
	assert.ErrorIs(t, err, ErrRefused)

	broken := NewPapertrailProvider(&PapertrailConfig{AccountsURL: server.URL + "/other", User: "distributor", Password: "secret"}, nil)
	_, err = broken.CreateAccount(ctx, &AccountRequest{Name: "alice"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefused)
}

func TestPapertrailProvider_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	assert.Equal(t, DefaultTimeout, (&PapertrailConfig{}).Timeout())
	provider := NewPapertrailProvider(&PapertrailConfig{AccountsURL: server.URL, TimeoutMs: 50}, nil)
	assert.Equal(t, 50*time.Millisecond, provider.client.Timeout)

	started := time.Now()
	_, err := provider.CreateAccount(context.Background(), &AccountRequest{Name: "alice"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefused)
	assert.Less(t, time.Since(started), 5*time.Second)
}
