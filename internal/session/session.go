package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "employee_data_session"

	authenticatedKey = "authenticated"
)

// FlashMessage mirrors the category/message pairs the UI layer renders.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func init() {
	gob.Register(FlashMessage{})
}

// Manager wraps the cookie-backed session store. The logged-in flag and
// the flash queue are the only state it carries; everything rides in the
// signed session cookie, so there is no server-side session table.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return &Manager{store: store}
}

// IsAuthenticated reports whether the request carries a logged-in session.
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	v, ok := s.Values[authenticatedKey].(bool)
	return ok && v
}

// Login marks the session authenticated.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values[authenticatedKey] = true
	return s.Save(r, w)
}

// Logout clears all session state.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values = make(map[interface{}]interface{})
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// Flash queues a message for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, category, message string) error {
	s, _ := m.store.Get(r, sessionName)
	s.AddFlash(FlashMessage{Category: category, Message: message})
	return s.Save(r, w)
}

// PopFlashes drains and returns the queued messages.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			out = append(out, msg)
		}
	}
	return out
}
