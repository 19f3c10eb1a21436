// Package account manages accounts, the login session, placement matches
// and race results on top of a key-value store.
package account

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/neurotype/internal/bot"
	"github.com/verte-zerg/neurotype/internal/generator"
	"github.com/verte-zerg/neurotype/internal/model"
)

// Store is the persistent key-value collaborator.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Lister is implemented by stores that can enumerate keys.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Manager implements account lifecycle, placement and race scoring.
// Operations are serialized; concurrent processes sharing one store are not coordinated.
type Manager struct {
	mu      sync.Mutex
	store   Store
	session *Session
	hasher  Hasher
	gen     *generator.Generator
	bot     *bot.Bot
	now     func() time.Time
	newID   func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithSession shares an existing session.
func WithSession(s *Session) Option {
	return func(m *Manager) { m.session = s }
}

// WithHasher sets how passwords are stored and compared.
func WithHasher(h Hasher) Option {
	return func(m *Manager) { m.hasher = h }
}

// WithGenerator sets the prompt generator.
func WithGenerator(g *generator.Generator) Option {
	return func(m *Manager) { m.gen = g }
}

// WithBot sets the bot used for speed simulation.
func WithBot(b *bot.Bot) Option {
	return func(m *Manager) { m.bot = b }
}

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator sets the race record ID source.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// New returns a Manager over store with an empty session.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		hasher: PlainHasher{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.session == nil {
		m.session = NewSession()
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if m.bot == nil {
		m.bot = bot.New()
	}
	return m
}

// Session returns the session handle used by m.
func (m *Manager) Session() *Session {
	return m.session
}

// CreateAccount validates and stores a new account, then logs it in.
func (m *Manager) CreateAccount(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists, err := m.store.Get(ctx, userKey(username))
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return ErrDuplicateUsername
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	stored, err := m.hasher.Hash(password)
	if err != nil {
		return err
	}
	acc := model.Account{
		Username:  username,
		Password:  stored,
		CreatedAt: m.now().UTC(),
		Stats:     model.Stats{Races: []model.RaceRecord{}},
	}
	if err := m.saveAccount(ctx, acc); err != nil {
		return err
	}
	return m.login(ctx, username, password)
}

// Login checks credentials and makes username the active account.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.login(ctx, username, password)
}

func (m *Manager) login(ctx context.Context, username, password string) error {
	acc, err := m.loadAccount(ctx, username)
	if err != nil {
		return err
	}
	if !m.hasher.Compare(acc.Password, password) {
		return ErrIncorrectPassword
	}
	if err := m.store.Set(ctx, currentUserKey, username); err != nil {
		return fmt.Errorf("failed to save session marker: %w", err)
	}
	m.session.set(acc)
	return nil
}

// Logout clears the session and its persisted marker. Logging out twice is safe.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logout(ctx)
}

func (m *Manager) logout(ctx context.Context) error {
	m.session.clear()
	if err := m.store.Remove(ctx, currentUserKey); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}

// LoadCurrentUser restores the session from the persisted marker. A marker
// pointing at a missing account leaves the session empty without error.
func (m *Manager) LoadCurrentUser(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, ok, err := m.store.Get(ctx, currentUserKey)
	if err != nil {
		return fmt.Errorf("failed to read session marker: %w", err)
	}
	if !ok || username == "" {
		return nil
	}
	raw, ok, err := m.store.Get(ctx, userKey(username))
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if !ok {
		return nil
	}
	acc, err := decodeAccount(raw)
	if err != nil {
		return err
	}
	m.session.set(acc)
	return nil
}

// IsLoggedIn reports whether an account is active.
func (m *Manager) IsLoggedIn() bool {
	return m.session.LoggedIn()
}

// CurrentUser returns the active account.
func (m *Manager) CurrentUser() (model.Account, bool) {
	return m.session.Current()
}

// DeleteAccount removes the active account and logs out.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, ok := m.session.username()
	if !ok {
		return ErrNotLoggedIn
	}
	if err := m.store.Remove(ctx, userKey(username)); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return m.logout(ctx)
}

// Usernames lists stored accounts when the store can enumerate keys.
func (m *Manager) Usernames(ctx context.Context) ([]string, error) {
	lister, ok := m.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("store does not support listing accounts")
	}
	keys, err := lister.Keys(ctx, userKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(userKeyPrefix):])
	}
	return names, nil
}

func (m *Manager) loadAccount(ctx context.Context, username string) (model.Account, error) {
	raw, ok, err := m.store.Get(ctx, userKey(username))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to load account: %w", err)
	}
	if !ok {
		return model.Account{}, ErrUserNotFound
	}
	return decodeAccount(raw)
}

func (m *Manager) saveAccount(ctx context.Context, acc model.Account) error {
	raw, err := encodeAccount(acc)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, userKey(acc.Username), raw); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}
