package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/transport"
)

// runCommand runs the root command against an API served by handler
func runCommand(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := fmt.Sprintf(`server:
  url: %s/public/v2/
  token: test-token
ui:
  time_format: "15:04"
logging:
  file: %s
`, srv.URL, filepath.Join(dir, "roster.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func usersHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set(transport.PagesHeader, "2")
			w.Write([]byte(`[]`))
		case "2":
			w.Write([]byte(`[{"id":42,"name":"Jane Doe","email":"jane@example.com","gender":"female","status":"active"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestList_Table(t *testing.T) {
	out, err := runCommand(t, usersHandler(t), "list")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
}

func TestList_JSON(t *testing.T) {
	out, err := runCommand(t, usersHandler(t), "list", "--json")
	require.NoError(t, err)

	assert.Contains(t, out, `"id": 42`)
	assert.Contains(t, out, `"email": "jane@example.com"`)
	assert.Contains(t, out, `"observed_at"`)
}

func TestList_Failure(t *testing.T) {
	_, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "list")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.KindUnauthorized))
	assert.Contains(t, err.Error(), "Check your access token")
}

func TestCreate(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/public/v2/users", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"Jane","email":"jane@example.com","gender":"male","status":"active"}`))
	}, "create", "--name", "Jane", "--email", "jane@example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "User created successfully (id 7)")
}

func TestCreate_Conflict(t *testing.T) {
	_, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`[{"field":"email","message":"has already been taken"}]`))
	}, "create", "--name", "Jane", "--email", "jane@example.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.KindConflict))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreate_RequiresFlags(t *testing.T) {
	_, err := runCommand(t, usersHandler(t), "create", "--name", "Jane")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/public/v2/users/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "delete", "42")

	require.NoError(t, err)
	assert.Contains(t, out, "User deleted successfully")
}

func TestDelete_InvalidID(t *testing.T) {
	_, err := runCommand(t, usersHandler(t), "delete", "abc")
	assert.ErrorIs(t, err, errInvalidID)

	_, err = runCommand(t, usersHandler(t), "delete", "0")
	assert.ErrorIs(t, err, errInvalidID)
}

func TestDelete_ServerError(t *testing.T) {
	_, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "delete", "42")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.KindServerError))
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, usersHandler(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "roster")
	assert.Equal(t, "roster/dev", transport.UserAgent)
}
