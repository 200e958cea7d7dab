// Package auth implements the sign-in gateway against a local accounts file
package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	domainauth "prioritizer/internal/domain/auth"
	"prioritizer/pkg/filesystem"
)

// ProviderPassword is the provider recorded for credential sign-ins
const ProviderPassword = "password"

const subscriberBuffer = 8

// Identity is what an interactive provider reports about the signed-in user
type Identity struct {
	UserID string
	Email  string
}

// Authenticator performs an interactive sign-in with one provider
type Authenticator interface {
	Authenticate(ctx context.Context) (*Identity, error)
}

// LocalGateway implements domain auth.Gateway with locally issued tokens.
// The active session is persisted so separate CLI invocations share it.
type LocalGateway struct {
	accounts    *AccountStore
	tokens      *TokenIssuer
	sessionPath string
	providers   map[domainauth.ProviderKind]Authenticator
	log         *log.Entry

	mu          sync.Mutex
	current     *domainauth.Session
	loaded      bool
	subscribers map[int]chan *domainauth.Session
	nextSubID   int
}

var _ domainauth.Gateway = (*LocalGateway)(nil)

// NewLocalGateway creates a gateway. No interactive providers are registered.
func NewLocalGateway(accounts *AccountStore, tokens *TokenIssuer, sessionPath string, logger *log.Logger) *LocalGateway {
	return &LocalGateway{
		accounts:    accounts,
		tokens:      tokens,
		sessionPath: sessionPath,
		providers:   make(map[domainauth.ProviderKind]Authenticator),
		log:         logger.WithField("component", "auth_gateway"),
		subscribers: make(map[int]chan *domainauth.Session),
	}
}

// RegisterProvider enables interactive sign-in through a
func (g *LocalGateway) RegisterProvider(kind domainauth.ProviderKind, a Authenticator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.providers[kind] = a
}

// Register creates an account and signs it in
func (g *LocalGateway) Register(ctx context.Context, identifier, secret string) (*domainauth.Session, error) {
	if err := domainauth.ValidateCredentials(identifier, secret); err != nil {
		return nil, err
	}
	if _, err := g.accounts.Register(identifier, secret); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return nil, domainauth.NewError(domainauth.KindInvalidInput, "an account with this identifier already exists", err)
		}
		return nil, domainauth.NewError(domainauth.KindInternal, "registration failed", err)
	}
	return g.SignInWithCredentials(ctx, identifier, secret)
}

// SignInWithCredentials signs in with an email or phone number and password
func (g *LocalGateway) SignInWithCredentials(ctx context.Context, identifier, secret string) (*domainauth.Session, error) {
	if err := domainauth.ValidateCredentials(identifier, secret); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domainauth.NewError(domainauth.KindInternal, "sign in canceled", err)
	}

	account, err := g.accounts.Authenticate(identifier, secret)
	if errors.Is(err, ErrAccountNotFound) {
		g.log.WithField("identifier", identifier).Info("rejected sign in")
		return nil, domainauth.NewError(domainauth.KindInvalidCredentials, "invalid email, phone number or password", nil)
	}
	if err != nil {
		return nil, domainauth.NewError(domainauth.KindInternal, "sign in failed", err)
	}

	return g.establish(account.ID, account.Identifier, ProviderPassword)
}

// SignInInteractive signs in through a registered provider
func (g *LocalGateway) SignInInteractive(ctx context.Context, provider domainauth.ProviderKind) (*domainauth.Session, error) {
	g.mu.Lock()
	authenticator, ok := g.providers[provider]
	g.mu.Unlock()
	if !ok {
		return nil, domainauth.NewError(domainauth.KindProviderUnavailable,
			fmt.Sprintf("sign in with %s is not available", provider), nil)
	}

	identity, err := authenticator.Authenticate(ctx)
	if err != nil {
		var authErr *domainauth.Error
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, domainauth.NewError(domainauth.KindInternal, "sign in failed", err)
	}

	return g.establish(identity.UserID, identity.Email, string(provider))
}

// SignOut ends the current session; signing out while signed out succeeds
func (g *LocalGateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := os.Remove(g.sessionPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domainauth.NewError(domainauth.KindInternal, "sign out failed", err)
	}
	g.loaded = true
	g.current = nil
	g.publishLocked(nil)
	return nil
}

// Current returns the active session, nil when signed out
func (g *LocalGateway) Current() *domainauth.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked()
	return g.current
}

// ObserveSession streams the current session and every later change until ctx
// ends or the returned stop func is called
func (g *LocalGateway) ObserveSession(ctx context.Context) (<-chan *domainauth.Session, func()) {
	ch := make(chan *domainauth.Session, subscriberBuffer)

	g.mu.Lock()
	g.loadLocked()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = ch
	ch <- g.current
	g.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.subscribers, id)
			close(ch)
			g.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		stop()
	}()

	return ch, stop
}

func (g *LocalGateway) establish(userID, email, provider string) (*domainauth.Session, error) {
	session, err := g.tokens.Issue(userID, email, provider)
	if err != nil {
		return nil, domainauth.NewError(domainauth.KindInternal, "failed to issue session", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return nil, domainauth.NewError(domainauth.KindInternal, "failed to encode session", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := filesystem.SafeWrite(g.sessionPath, data, 0o600); err != nil {
		return nil, domainauth.NewError(domainauth.KindInternal, "failed to store session", err)
	}
	g.loaded = true
	g.current = session
	g.publishLocked(session)
	g.log.WithFields(log.Fields{"user": userID, "provider": provider}).Info("signed in")
	return session, nil
}

// loadLocked reads the persisted session once. Tokens that fail verification
// are treated as signed out.
func (g *LocalGateway) loadLocked() {
	if g.loaded {
		return
	}
	g.loaded = true

	data, err := os.ReadFile(g.sessionPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			g.log.WithError(err).Warn("failed to read session")
		}
		return
	}

	var stored domainauth.Session
	if err := yaml.Unmarshal(data, &stored); err != nil {
		g.log.WithError(err).Warn("ignoring malformed session file")
		return
	}

	session, err := g.tokens.Verify(stored.Token)
	if err != nil {
		g.log.WithError(err).Debug("stored session is no longer valid")
		return
	}
	g.current = session
}

// publishLocked delivers s to every subscriber. A subscriber that is behind
// loses its oldest pending value so the latest state always arrives.
func (g *LocalGateway) publishLocked(s *domainauth.Session) {
	for _, ch := range g.subscribers {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
