package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/asnhub/asndash/internal/identity"
	"github.com/asnhub/asndash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentityService(t *testing.T) *identity.Service {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return identity.NewService(identity.NewMemoryStore(), log)
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello \n"))

	got, err := GetSimpleText(reader, "Say something:", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Contains(t, out.String(), "Say something:")
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Prompt:", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestRunUnknownCommand(t *testing.T) {
	svc := newTestIdentityService(t)
	var out bytes.Buffer

	err := Run(context.Background(), svc, []string{"bogus"}, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "unknown command")
	assert.Contains(t, out.String(), "usage: asnctl")
}

func TestRunNoCommand(t *testing.T) {
	svc := newTestIdentityService(t)
	var out bytes.Buffer

	err := Run(context.Background(), svc, nil, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "command required")
}

func TestAddUserAndListUsers(t *testing.T) {
	svc := newTestIdentityService(t)
	stubPassword(t, "secret1")
	var out bytes.Buffer

	in := strings.NewReader("jdoe\njdoe@example.com\nJ. Doe\nadmin\n")
	err := Run(context.Background(), svc, []string{"add-user"}, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "user jdoe created")

	u, err := svc.GetUser(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, identity.RoleAdmin, u.Role)

	out.Reset()
	err = Run(context.Background(), svc, []string{"list-users"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "jdoe")
	assert.Contains(t, out.String(), "admin")
}

func TestAddUserDefaultsRole(t *testing.T) {
	svc := newTestIdentityService(t)
	stubPassword(t, "secret1")
	var out bytes.Buffer

	in := strings.NewReader("plain\n\n\n\n")
	err := Run(context.Background(), svc, []string{"add-user"}, in, &out)
	require.NoError(t, err)

	u, err := svc.GetUser(context.Background(), "plain")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, identity.RoleUser, u.Role)
}

func TestAddUserRejectsUnknownRole(t *testing.T) {
	svc := newTestIdentityService(t)
	stubPassword(t, "secret1")
	var out bytes.Buffer

	in := strings.NewReader("jdoe\n\n\nwizard\n")
	err := Run(context.Background(), svc, []string{"add-user"}, in, &out)
	assert.ErrorContains(t, err, "unknown role")
}

func TestAddUserConflict(t *testing.T) {
	svc := newTestIdentityService(t)
	stubPassword(t, "secret1")

	_, err := svc.CreateUser(context.Background(), "jdoe", "secret1", "", "", identity.RoleUser)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("jdoe\n\n\n\n")
	err = Run(context.Background(), svc, []string{"add-user"}, in, &out)
	assert.ErrorContains(t, err, "username already taken")
}

func TestDelUser(t *testing.T) {
	svc := newTestIdentityService(t)
	_, err := svc.CreateUser(context.Background(), "jdoe", "secret1", "", "", identity.RoleUser)
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(context.Background(), svc, []string{"del-user"}, strings.NewReader("jdoe\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "user jdoe deleted")

	res, err := svc.Authenticate(context.Background(), "jdoe", "secret1")
	require.NoError(t, err)
	assert.False(t, res.OK)
}

func TestCleanupCommand(t *testing.T) {
	svc := newTestIdentityService(t)
	var out bytes.Buffer

	err := Run(context.Background(), svc, []string{"cleanup"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "removed 0 invalid credential(s)")
}

func TestResetConfirmed(t *testing.T) {
	svc := newTestIdentityService(t)
	_, err := svc.CreateUser(context.Background(), "jdoe", "secret1", "", "", identity.RoleUser)
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(context.Background(), svc, []string{"reset"}, strings.NewReader("yes\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "reset to defaults")

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestResetAborted(t *testing.T) {
	svc := newTestIdentityService(t)
	_, err := svc.CreateUser(context.Background(), "jdoe", "secret1", "", "", identity.RoleUser)
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(context.Background(), svc, []string{"reset"}, strings.NewReader("no\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "aborted")

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
