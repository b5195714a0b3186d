package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticTokens("tok-123")))
	err := client.get(context.Background(), "/maestros/", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticTokens("")))
	err := client.get(context.Background(), "/maestros/", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_AuthFailureHookRunsBeforeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer server.Close()

	hookRan := false
	client := NewClient(server.URL, WithAuthFailureHook(func() {
		hookRan = true
	}))

	err := client.get(context.Background(), "/notas/", nil, nil)
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, hookRan, "hook must have completed before the error surfaced")
	assert.Equal(t, "token expired", authErr.Message)
}

func TestClient_ValidationErrorFlattensInBodyOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username": ["required"], "password": ["too short"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.post(context.Background(), "/auth/login/", map[string]string{}, nil)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, http.StatusBadRequest, valErr.StatusCode)
	assert.Equal(t, "required, too short", valErr.Message)
	assert.Equal(t, []string{"required"}, valErr.Fields["username"])
	assert.Equal(t, []string{"too short"}, valErr.Fields["password"])
}

func TestClient_ValidationErrorUnstructuredBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.get(context.Background(), "/alumnos/999/", nil, nil)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "not json at all", valErr.Message)
	assert.Nil(t, valErr.Fields)
}

func TestClient_ServerErrorPassesBodyThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.get(context.Background(), "/cursos/", nil, nil)

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadGateway, srvErr.StatusCode)
	assert.Equal(t, "upstream exploded", srvErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	// A server that is already closed guarantees a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	err := client.get(context.Background(), "/cursos/", nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, errors.Unwrap(netErr))
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{
			"token": "access-1",
			"refreshToken": "refresh-1",
			"user": {"id": 7, "username": "maria", "first_name": "Maria", "last_name": "Lopez", "role": "padre"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), "maria", "secret")
	require.NoError(t, err)

	assert.Equal(t, "access-1", resp.Token)
	assert.Equal(t, "refresh-1", resp.RefreshToken)
	assert.Equal(t, 7, resp.User.ID)
	assert.Equal(t, "padre", resp.User.Role)
}

func TestClient_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh/", r.URL.Path)
		w.Write([]byte(`{"token": "access-2"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.RefreshToken(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", resp.Token)
}

func TestFlattenFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
		wantOK  bool
	}{
		{
			name:    "single field single message",
			body:    `{"detail": "Invalid credentials"}`,
			wantMsg: "Invalid credentials",
			wantOK:  true,
		},
		{
			name:    "multiple fields keep body order",
			body:    `{"b_field": ["second"], "a_field": ["first"]}`,
			wantMsg: "second, first",
			wantOK:  true,
		},
		{
			name:    "list values expand in order",
			body:    `{"password": ["too short", "too common"]}`,
			wantMsg: "too short, too common",
			wantOK:  true,
		},
		{
			name:   "array body is not field errors",
			body:   `["a", "b"]`,
			wantOK: false,
		},
		{
			name:   "empty object",
			body:   `{}`,
			wantOK: false,
		},
		{
			name:   "not json",
			body:   `oops`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg, ok := flattenFieldErrors([]byte(tt.body))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMsg, msg)
			}
		})
	}
}
