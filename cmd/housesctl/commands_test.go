package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "houses.db"))
	t.Setenv("PHOTO_STORE", "local")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateUserAndSetRole(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")

	out, err = run(t, "create-user", "root@example.com", "-p", "secret1", "-r", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin user root@example.com")

	out, err = run(t, "create-user", "pat@example.com", "-p", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user user pat@example.com")

	out, err = run(t, "set-role", "pat@example.com", "publisher")
	require.NoError(t, err)
	assert.Contains(t, out, "pat@example.com is now publisher")
	assert.Contains(t, out, "DELETE /api/v1/admin/cache")

	_, err = run(t, "set-role", "pat@example.com", "owner")
	assert.Error(t, err)

	_, err = run(t, "create-user", "pat@example.com", "-p", "secret1")
	assert.Error(t, err)

	out, err = run(t, "reconcile-ratings")
	require.NoError(t, err)
	assert.Contains(t, out, "Recomputed 0 houses")
}

func TestSetRoleHelpMentionsCacheFlush(t *testing.T) {
	out, err := run(t, "set-role", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "ACTOR_CACHE_TTL")
	assert.Contains(t, out, "DELETE /api/v1/admin/cache")
}

func TestCreateUserRequiresPassword(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "create-user", "pat@example.com")
	assert.Error(t, err)
}
