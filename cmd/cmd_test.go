package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/session"
	"github.com/assetdesk/assetdesk/stub"
)

// testEnv points the CLI at a fresh stub backend and an isolated session
// file, returning the session path for assertions.
func testEnv(t *testing.T) (configPath, sessionPath string) {
	t.Helper()

	srv := httptest.NewServer(stub.New())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(""), 0o644))

	sessionPath = filepath.Join(dir, "session.db")
	t.Setenv("ASSETDESK_BACKEND_DEV_URL", srv.URL+"/api/v1")
	t.Setenv("ASSETDESK_BACKEND_PROD_URL", "")
	t.Setenv("ASSETDESK_SESSION_PATH", sessionPath)

	return configPath, sessionPath
}

func runCLI(t *testing.T, configPath string, args ...string) error {
	t.Helper()

	cli := NewCLI()
	cli.SetArgs(append(args, "--config", configPath))
	return cli.Execute()
}

func TestCommandTree(t *testing.T) {
	cli := NewCLI()

	want := []string{
		"login", "register", "logout", "refresh", "passwd",
		"whoami", "account", "assets", "status", "stub", "version",
	}
	got := make(map[string]bool)
	for _, sub := range cli.Commands() {
		got[sub.Name()] = true
	}

	for _, name := range want {
		require.True(t, got[name], "missing command %q", name)
	}
}

func TestLoginThenLogout(t *testing.T) {
	configPath, sessionPath := testEnv(t)

	require.NoError(t, runCLI(t, configPath, "login", "--username", "demo", "--password", "demo1234"))

	store, err := session.Open(sessionPath)
	require.NoError(t, err)
	access, err := store.AccessToken()
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NoError(t, store.Close())

	require.NoError(t, runCLI(t, configPath, "logout"))

	store, err = session.Open(sessionPath)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.AccessToken()
	require.ErrorIs(t, err, session.ErrNoToken)
}

func TestWhoamiWithoutSession(t *testing.T) {
	configPath, _ := testEnv(t)

	err := runCLI(t, configPath, "whoami")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no access token stored")
}

func TestAssetsCommand(t *testing.T) {
	configPath, _ := testEnv(t)

	require.NoError(t, runCLI(t, configPath, "assets", "gold"))
	require.Error(t, runCLI(t, configPath, "assets", "stamps"))
}

func TestStatusSurvivesDeadBackend(t *testing.T) {
	configPath, _ := testEnv(t)

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()
	t.Setenv("ASSETDESK_BACKEND_DEV_URL", dead.URL)

	require.NoError(t, runCLI(t, configPath, "status"))
}

func TestVersionCommand(t *testing.T) {
	cli := NewCLI()
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute())
}
