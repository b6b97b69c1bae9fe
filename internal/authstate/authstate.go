// Package authstate holds the signed-in user and bearer token, mirrored to
// a kvstore so a restart can restore them. There is no refresh; a token is
// trusted until the server rejects it.
package authstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/kvstore"
)

// ErrInvalidCredentials is the only login failure users see.
var ErrInvalidCredentials = errors.New("Invalid credentials")

type API interface {
	LoginWithOAuth(ctx context.Context, provider string) (apiclient.AuthResponse, error)
	Login(ctx context.Context, email, password string) (apiclient.AuthResponse, error)
	Logout(ctx context.Context) error
}

// State is anonymous when User is nil.
type State struct {
	User  *apiclient.User
	Token string
}

func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

type Auth struct {
	api    API
	store  kvstore.Store
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

func New(api API, store kvstore.Store, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{
		api:    api,
		store:  store,
		logger: logger,
		subs:   map[int]func(State){},
	}
}

func (a *Auth) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Restore rebuilds the state from the store. A token without a readable
// user, or the reverse, counts as anonymous.
func (a *Auth) Restore() State {
	next := State{}

	token, okToken := a.store.Get(kvstore.TokenKey)
	raw, okUser := a.store.Get(kvstore.UserKey)
	if okToken && okUser && token != "" {
		var u apiclient.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			next = State{User: &u, Token: token}
		} else {
			a.logger.Warn("stored user unreadable, starting signed out", "error", err)
		}
	}

	a.set(next)
	return next
}

func (a *Auth) LoginWithOAuth(ctx context.Context, provider string) error {
	resp, err := a.api.LoginWithOAuth(ctx, provider)
	if err != nil {
		return fmt.Errorf("oauth login with %s: %w", provider, err)
	}
	return a.signIn(resp)
}

// Login maps 400 and 401 answers to ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	resp, err := a.api.Login(ctx, email, password)
	if apiclient.IsStatus(err, http.StatusUnauthorized) || apiclient.IsStatus(err, http.StatusBadRequest) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.signIn(resp)
}

// Logout asks the server to revoke the token, then forgets it locally
// whatever the server said.
func (a *Auth) Logout(ctx context.Context) error {
	if a.State().Authenticated() {
		if err := a.api.Logout(ctx); err != nil {
			a.logger.Warn("server logout failed", "error", err)
		}
	}

	err := a.store.Delete(kvstore.TokenKey, kvstore.UserKey)
	a.set(State{})
	if err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

func (a *Auth) signIn(resp apiclient.AuthResponse) error {
	if resp.AccessToken == "" {
		return errors.New("login response has no access token")
	}

	user := resp.User
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	err = a.store.SetMany(map[string]string{
		kvstore.TokenKey: resp.AccessToken,
		kvstore.UserKey:  string(raw),
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	a.set(State{User: &user, Token: resp.AccessToken})
	return nil
}

// Watcher reports changes made to the store from outside this process.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Follow restores the state after every outside change, so a sign-in or
// sign-out in another process reaches this one's subscribers. It blocks
// until ctx is done.
func (a *Auth) Follow(ctx context.Context, w Watcher) error {
	return w.Watch(ctx, func() { a.Restore() })
}

// ======================================================
// SUBSCRIPTIONS
// ======================================================

// Subscribe registers fn for every state change. The returned func removes
// it.
func (a *Auth) Subscribe(fn func(State)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.next
	a.next++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

func (a *Auth) set(s State) {
	a.mu.Lock()
	a.state = s
	subs := make([]func(State), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
