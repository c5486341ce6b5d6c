// Package session provides server-side HTTP sessions.
//
// The cookie carries only a signed token naming the session id; the data
// lives in a cache.Store (Redis or memory). Changes are persisted, and the
// cookie written, just before the response headers go out.
//
//	mgr := session.NewManager(store, session.DefaultOptions())
//	r.Use(mgr.Middleware())
//
//	sess := session.FromCtx(r)
//	_ = sess.Put("user", identity)
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/cache"
)

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
	// Secret signs the cookie token.
	Secret []byte
}

// DefaultOptions reads the SESSION_* config keys.
func DefaultOptions() Options {
	return Options{
		CookieName: config.SessionCookie(),
		TTL:        config.SessionLifetime(),
		HTTPOnly:   true,
		Secure:     config.SessionSecure(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
		Secret:     []byte(config.SessionSecret()),
	}
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle. It is not safe for concurrent
// use; each request owns its own.
type Session struct {
	id        string
	staleID   string
	data      map[string]json.RawMessage
	changed   bool
	destroyed bool
	saved     bool
}

func newID() string { return uuid.NewString() }

func storeKey(id string) string { return "storefront:session:" + id }

// ID returns the current session id.
func (s *Session) ID() string { return s.id }

// Put stores value under key, JSON-encoded.
func (s *Session) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", key, err)
	}
	s.data[key] = raw
	s.changed = true
	return nil
}

// Decode unmarshals the value under key into dest. It reports whether the
// key was present.
func (s *Session) Decode(key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("session: decode %s: %w", key, err)
	}
	return true, nil
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.changed = true
	}
}

// Renew moves the data to a fresh id. The old record is dropped on save.
func (s *Session) Renew() {
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = newID()
	s.changed = true
}

// Destroyed reports whether Destroy succeeded on this session.
func (s *Session) Destroyed() bool { return s.destroyed }

// ------------------- Manager -------------------

// Manager loads and persists sessions in a cache.Store.
type Manager struct {
	store cache.Store
	opts  Options
	codec tokenCodec
	now   func() time.Time
}

// NewManager returns a Manager writing to store.
func NewManager(store cache.Store, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &Manager{
		store: store,
		opts:  opts,
		codec: tokenCodec{secret: opts.Secret},
		now:   time.Now,
	}
}

// Options returns the manager's options.
func (m *Manager) Options() Options { return m.opts }

// Store returns the backing store.
func (m *Manager) Store() cache.Store { return m.store }

// Load resolves the session named by the request cookie. A missing, forged,
// expired or unknown cookie yields a new empty session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	fresh := &Session{id: newID(), data: map[string]json.RawMessage{}}

	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return fresh, nil
	}

	id, err := m.codec.parse(cookie.Value, m.now())
	if err != nil {
		return fresh, nil
	}

	data := map[string]json.RawMessage{}
	hit, err := cache.GetJSON(r.Context(), m.store, storeKey(id), &data)
	if err != nil {
		return fresh, err
	}
	if !hit {
		return fresh, nil
	}

	return &Session{id: id, data: data}, nil
}

// Destroy deletes the record from the store. The cookie is expired when the
// response is written.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	keys := []string{storeKey(s.id)}
	if s.staleID != "" {
		keys = append(keys, storeKey(s.staleID))
	}
	if err := m.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("session: destroy: %w", err)
	}

	s.data = map[string]json.RawMessage{}
	s.destroyed = true
	s.changed = false
	return nil
}

// Save persists s if it changed and writes the matching cookie onto w.
// Calling it twice for the same request is a no-op.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.saved {
		return nil
	}
	s.saved = true

	if s.destroyed {
		http.SetCookie(w, m.cookie("", -1))
		return nil
	}
	if !s.changed {
		return nil
	}

	if s.staleID != "" {
		if err := m.store.Del(ctx, storeKey(s.staleID)); err != nil {
			return fmt.Errorf("session: drop renewed id: %w", err)
		}
	}

	if err := cache.SetJSON(ctx, m.store, storeKey(s.id), s.data, m.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	token, err := m.codec.sign(s.id, m.now(), m.opts.TTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, int(m.opts.TTL.Seconds())))

	s.changed = false
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     m.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: m.opts.HTTPOnly,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}

// ------------------- Context -------------------

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// FromCtx retrieves the session from the request context, or a detached
// empty session that is never persisted.
func FromCtx(r *http.Request) *Session {
	if s, ok := FromContext(r.Context()); ok {
		return s
	}
	return &Session{id: newID(), data: map[string]json.RawMessage{}, saved: true}
}
