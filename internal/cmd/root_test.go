package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioapp/colegio/internal/api"
	"github.com/colegioapp/colegio/internal/config"
	"github.com/colegioapp/colegio/internal/log"
	"github.com/colegioapp/colegio/internal/session"
)

// newTestApp wires an app the way getApp does, against the given backend and
// a credentials file in a temp dir.
func newTestApp(t *testing.T, backend http.Handler) (*app, string) {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	credPath := filepath.Join(t.TempDir(), "credentials.json")
	logger := log.New(log.Config{Level: log.LevelError, Output: io.Discard})

	store := session.NewStore(credPath)
	client := api.NewClient(server.URL,
		api.WithTokenSource(store),
		api.WithLogger(logger),
		api.WithAuthFailureHook(func() {
			if err := store.Logout(); err != nil {
				logger.Warn("failed to clear credentials", "error", err.Error())
			}
		}),
	)
	store.Restore()

	return &app{
		cfg:    &config.Config{APIURL: server.URL},
		store:  store,
		client: client,
		logger: logger,
	}, credPath
}

// loginHandler answers /auth/login/ with a user of the given role.
func loginHandler(role string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{
			"token": "access-1",
			"refreshToken": "refresh-1",
			"user": {"id": 7, "username": "maria", "first_name": "Maria", "last_name": "Lopez", "role": %q}
		}`, role)
	})
}

func TestRequireRole_Authorized(t *testing.T) {
	a, _ := newTestApp(t, loginHandler(roleParent))

	_, err := a.store.Login(context.Background(), a.client, "maria", "secret")
	require.NoError(t, err)

	sess, err := a.requireRole(roleParent)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, roleParent, sess.User.Role)
}

func TestRequireRole_NotLoggedIn(t *testing.T) {
	a, _ := newTestApp(t, loginHandler(roleParent))

	sess, err := a.requireRole(roleParent)
	require.Error(t, err)
	assert.Nil(t, sess)

	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "not logged in")
}

func TestRequireRole_WrongRoleTearsDownOnce(t *testing.T) {
	a, credPath := newTestApp(t, loginHandler("maestro"))

	_, err := a.store.Login(context.Background(), a.client, "juan", "secret")
	require.NoError(t, err)
	_, statErr := os.Stat(credPath)
	require.NoError(t, statErr)

	sess, err := a.requireRole(roleParent)
	require.Error(t, err)
	assert.Nil(t, sess)

	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "logged out")

	// The foreign-role session is fully gone: memory and file together.
	assert.Nil(t, a.store.Current())
	_, statErr = os.Stat(credPath)
	assert.True(t, os.IsNotExist(statErr))

	// The teardown happened on the first denial; a repeat call finds no
	// session at all instead of tearing down again.
	_, err = a.requireRole(roleParent)
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "not logged in")
}

func TestAuthFailureHook_ClearsCredentialsBeforeErrorSurfaces(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login/" {
			loginHandler(roleParent).ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	})

	server := httptest.NewServer(backend)
	defer server.Close()

	credPath := filepath.Join(t.TempDir(), "credentials.json")
	store := session.NewStore(credPath)

	credsGoneInHook := false
	client := api.NewClient(server.URL,
		api.WithTokenSource(store),
		api.WithAuthFailureHook(func() {
			require.NoError(t, store.Logout())
			_, statErr := os.Stat(credPath)
			credsGoneInHook = os.IsNotExist(statErr)
		}),
	)
	store.Restore()

	_, err := store.Login(context.Background(), client, "maria", "secret")
	require.NoError(t, err)

	_, err = client.ParentDashboard(context.Background())
	require.Error(t, err)

	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "token expired", authErr.Message)
	assert.True(t, credsGoneInHook, "credentials were removed before the error surfaced")
	assert.Nil(t, store.Current())
}

func TestRequireRole_BeforeRestoreDenies(t *testing.T) {
	// A store whose restore has not run yet never authorizes anything.
	credPath := filepath.Join(t.TempDir(), "credentials.json")
	a := &app{
		cfg:    &config.Config{},
		store:  session.NewStore(credPath),
		logger: log.New(log.Config{Level: log.LevelError, Output: io.Discard}),
	}

	sess, err := a.requireRole(roleParent)
	require.Error(t, err)
	assert.Nil(t, sess)
}
