package auth

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainauth "prioritizer/internal/domain/auth"
)

type fakeAuthenticator struct {
	identity *Identity
	err      error
}

func (f fakeAuthenticator) Authenticate(context.Context) (*Identity, error) {
	return f.identity, f.err
}

func newTestGateway(t *testing.T, dir string) *LocalGateway {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)

	tokens, err := NewTokenIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	accounts := NewAccountStore(filepath.Join(dir, "accounts.yml"), bcrypt.MinCost)
	return NewLocalGateway(accounts, tokens, filepath.Join(dir, "session.yml"), logger)
}

func TestLocalGateway_CredentialSignIn(t *testing.T) {
	dir := t.TempDir()
	gw := newTestGateway(t, dir)
	ctx := context.Background()

	_, err := gw.SignInWithCredentials(ctx, "ada@example.com", "secret1")
	assert.True(t, domainauth.IsKind(err, domainauth.KindInvalidCredentials))

	session, err := gw.Register(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, ProviderPassword, session.Provider)
	assert.NotEmpty(t, session.Token)

	_, err = gw.Register(ctx, "ADA@example.com", "secret2")
	assert.True(t, domainauth.IsKind(err, domainauth.KindInvalidInput))

	_, err = gw.SignInWithCredentials(ctx, "ada@example.com", "wrong-password")
	assert.True(t, domainauth.IsKind(err, domainauth.KindInvalidCredentials))

	_, err = gw.SignInWithCredentials(ctx, "not-an-email", "secret1")
	assert.True(t, domainauth.IsKind(err, domainauth.KindInvalidInput))

	again, err := gw.SignInWithCredentials(ctx, "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, again.UserID)
}

func TestLocalGateway_SessionPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := newTestGateway(t, dir)
	session, err := first.Register(ctx, "+15551234567", "secret1")
	require.NoError(t, err)

	second := newTestGateway(t, dir)
	current := second.Current()
	require.NotNil(t, current)
	assert.Equal(t, session.UserID, current.UserID)

	require.NoError(t, second.SignOut(ctx))
	assert.Nil(t, second.Current())
	assert.Nil(t, newTestGateway(t, dir).Current())

	require.NoError(t, second.SignOut(ctx), "signing out twice is fine")
}

func TestLocalGateway_TamperedSessionIsSignedOut(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := newTestGateway(t, dir).Register(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	logger := log.New()
	logger.SetOutput(io.Discard)
	other, err := NewTokenIssuer([]byte("another-secret"), time.Hour)
	require.NoError(t, err)
	gw := NewLocalGateway(NewAccountStore(filepath.Join(dir, "accounts.yml"), bcrypt.MinCost), other, filepath.Join(dir, "session.yml"), logger)

	assert.Nil(t, gw.Current())
}

func TestLocalGateway_Interactive(t *testing.T) {
	gw := newTestGateway(t, t.TempDir())
	ctx := context.Background()

	_, err := gw.SignInInteractive(ctx, domainauth.ProviderGoogle)
	assert.True(t, domainauth.IsKind(err, domainauth.KindProviderUnavailable))

	gw.RegisterProvider(domainauth.ProviderGoogle, fakeAuthenticator{identity: &Identity{UserID: "g-1", Email: "g@example.com"}})
	session, err := gw.SignInInteractive(ctx, domainauth.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, "google", session.Provider)
	assert.Equal(t, "g-1", session.UserID)

	gw.RegisterProvider(domainauth.ProviderGitHub, fakeAuthenticator{err: errors.New("popup closed")})
	_, err = gw.SignInInteractive(ctx, domainauth.ProviderGitHub)
	assert.True(t, domainauth.IsKind(err, domainauth.KindInternal))
}

func TestLocalGateway_ObserveSession(t *testing.T) {
	gw := newTestGateway(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions, stop := gw.ObserveSession(ctx)
	defer stop()

	assert.Nil(t, <-sessions, "first value is the current state")

	session, err := gw.Register(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	got := <-sessions
	require.NotNil(t, got)
	assert.Equal(t, session.UserID, got.UserID)

	require.NoError(t, gw.SignOut(ctx))
	assert.Nil(t, <-sessions)

	stop()
	_, open := <-sessions
	assert.False(t, open)
}

func TestLocalGateway_SlowSubscriberGetsLatest(t *testing.T) {
	gw := newTestGateway(t, t.TempDir())
	ctx := context.Background()

	sessions, stop := gw.ObserveSession(ctx)
	defer stop()

	_, err := gw.Register(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	for i := 0; i < subscriberBuffer+2; i++ {
		require.NoError(t, gw.SignOut(ctx))
	}

	last := &domainauth.Session{}
	for len(sessions) > 0 {
		last = <-sessions
	}
	assert.Nil(t, last)
}

func TestTokenIssuer(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("k"), time.Hour)
	require.NoError(t, err)

	session, err := issuer.Issue("u1", "u@example.com", ProviderPassword)
	require.NoError(t, err)

	verified, err := issuer.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", verified.UserID)
	assert.Equal(t, "u@example.com", verified.Email)
	assert.True(t, session.ExpiresAt.Equal(verified.ExpiresAt))

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.Issue("u1", "", ProviderPassword)
	require.NoError(t, err)
	_, err = issuer.Verify(expired.Token)
	assert.Error(t, err)

	_, err = issuer.Verify("garbage")
	assert.Error(t, err)

	_, err = NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)
}

func TestAccountStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yml")
	store := NewAccountStore(path, bcrypt.MinCost)

	account, err := store.Register("ada@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", account.PasswordHash)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
