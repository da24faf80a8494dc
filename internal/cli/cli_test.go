package cli_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption-marketplace/internal/cli"
	"pet-adoption-marketplace/internal/config"
	"pet-adoption-marketplace/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: config.Config{SeedDemo: true}}))
	t.Cleanup(ts.Close)
	return ts
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "production")
	t.Setenv("PETCTL_TOKEN", "")

	var out bytes.Buffer
	cmd := cli.NewRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSendAndWatchOnce(t *testing.T) {
	ts := newServer(t)

	out, err := run(t, "--api", ts.URL, "--user", "1", "send", "2", "is", "Buddy", "available?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SENT "), out)

	_, err = run(t, "--api", ts.URL, "--user", "2", "send", "1", "yes!")
	require.NoError(t, err)

	for _, extra := range [][]string{{"--no-push"}, {}} {
		args := append([]string{"--api", ts.URL, "--user", "1", "watch", "2", "--once"}, extra...)
		out, err = run(t, args...)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2, out)
		assert.Contains(t, lines[0], "me: is Buddy available?")
		assert.Contains(t, lines[1], "2: yes!")
	}
}

func TestThreads(t *testing.T) {
	ts := newServer(t)

	out, err := run(t, "--api", ts.URL, "--user", "1", "threads")
	require.NoError(t, err)
	assert.Equal(t, "no conversations\n", out)

	_, err = run(t, "--api", ts.URL, "--user", "1", "send", "3", "hello")
	require.NoError(t, err)

	out, err = run(t, "--api", ts.URL, "--user", "1", "threads")
	require.NoError(t, err)
	assert.Contains(t, out, "3\tAjay\t")
}

func TestNotificationsRespondAndMarkAll(t *testing.T) {
	ts := newServer(t)

	out, err := run(t, "--api", ts.URL, "--user", "1", "notifications", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* 1\tinterest")

	out, err = run(t, "--api", ts.URL, "--user", "1", "notif", "respond", "1", "accept")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "CONFIRMATION "), out)
	assert.Contains(t, out, "-> 2")

	_, err = run(t, "--api", ts.URL, "--user", "1", "notif", "respond", "1", "reject")
	assert.Error(t, err, "second answer must be rejected by the server")

	out, err = run(t, "--api", ts.URL, "--user", "2", "notifications", "mark-all")
	require.NoError(t, err)
	assert.Equal(t, "MARKED 1\n", out)
}

func TestInterestOwnPetFails(t *testing.T) {
	ts := newServer(t)

	_, err := run(t, "--api", ts.URL, "--user", "1", "interest", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")

	out, err := run(t, "--api", ts.URL, "--user", "3", "interest", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "NOTIFIED 1 "), out)
}

func TestUserRequired(t *testing.T) {
	ts := newServer(t)
	t.Setenv("PETCTL_USER", "")

	_, err := run(t, "--api", ts.URL, "threads")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user")

	_, err = run(t, "--api", ts.URL, "notif", "respond", "1", "maybe")
	require.Error(t, err)
}
