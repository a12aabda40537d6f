// Package session implements the signed-cookie session store.
//
// The cookie payload is base64url(JSON) with an HMAC-SHA256 signature over the
// payload plus expiry. A cookie that fails verification or has expired is
// treated identically to no session at all; callers never see an error for a
// bad cookie. The auth token held here is only ever transmitted as a bearer
// header to the shop API and is excluded from the client-safe projection.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the session cookie name.
const CookieName = "storefront_session"

// TTL is the session cookie lifetime.
const TTL = 7 * 24 * time.Hour

// Data is the full session record. AuthToken must never leave the server.
type Data struct {
	AuthToken       string `json:"authToken,omitempty"`
	CustomerID      string `json:"customerId,omitempty"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// ClientData is the client-safe projection of a session: everything except
// the bearer token.
type ClientData struct {
	CustomerID      string `json:"customerId,omitempty"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Session is one request's view of the cookie-backed session. Mutations are
// buffered in memory; Manager.Save writes the final state once per request.
type Session struct {
	data    Data
	changed bool
	cleared bool
}

// Fetch returns the client-safe projection, never the raw bearer token.
func (s *Session) Fetch() ClientData {
	return ClientData{
		CustomerID:      s.data.CustomerID,
		Email:           s.data.Email,
		FirstName:       s.data.FirstName,
		LastName:        s.data.LastName,
		IsAuthenticated: s.data.IsAuthenticated,
	}
}

// AuthToken returns the bearer token for upstream calls, or "" if absent.
func (s *Session) AuthToken() string {
	return s.data.AuthToken
}

// IsAuthenticated reports the local authentication hint. It is trusted only
// as a hint; protected actions must revalidate against the shop API.
func (s *Session) IsAuthenticated() bool {
	return s.data.IsAuthenticated
}

// Update merges the non-zero fields of partial into the session.
// IsAuthenticated is taken as-is when any identity field is present or when
// explicitly set true.
func (s *Session) Update(partial Data) {
	if partial.AuthToken != "" {
		s.data.AuthToken = partial.AuthToken
	}
	if partial.CustomerID != "" {
		s.data.CustomerID = partial.CustomerID
	}
	if partial.Email != "" {
		s.data.Email = partial.Email
	}
	if partial.FirstName != "" {
		s.data.FirstName = partial.FirstName
	}
	if partial.LastName != "" {
		s.data.LastName = partial.LastName
	}
	if partial.IsAuthenticated {
		s.data.IsAuthenticated = true
	}
	s.changed = true
	s.cleared = false
}

// SetToken stores a rotated bearer token observed on an upstream response.
func (s *Session) SetToken(token string) {
	if token == "" {
		return
	}
	s.data.AuthToken = token
	s.data.IsAuthenticated = true
	s.changed = true
	s.cleared = false
}

// Clear wipes all fields. Used by sign-out and by soft invalidation when the
// shop API no longer recognizes the customer.
func (s *Session) Clear() {
	s.data = Data{}
	s.changed = true
	s.cleared = true
}

// Changed reports whether the session needs to be re-written to the cookie.
func (s *Session) Changed() bool {
	return s.changed
}

// Manager signs, verifies, and (de)serializes session cookies.
type Manager struct {
	secret []byte
	secure bool
}

// NewManager creates a session manager. secure controls the cookie's Secure
// attribute and should be true in production.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Get decodes the session from the request cookie. A missing, tampered, or
// expired cookie yields a zero-value session, never an error.
func (m *Manager) Get(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return &Session{}
	}

	data, ok := m.verify(cookie.Value)
	if !ok {
		return &Session{}
	}

	return &Session{data: data}
}

// Save writes the session state to the response if it changed. A cleared
// session expires the cookie immediately.
func (m *Manager) Save(w http.ResponseWriter, s *Session) {
	if !s.changed {
		return
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}

	if s.cleared {
		cookie.Value = ""
		cookie.MaxAge = -1
	} else {
		cookie.Value = m.sign(s.data, time.Now().Add(TTL))
		cookie.MaxAge = int(TTL.Seconds())
	}

	http.SetCookie(w, cookie)
}

// sign encodes data as payload.expiry.signature using base64url segments.
func (m *Manager) sign(data Data, expiry time.Time) string {
	payload, err := json.Marshal(data)
	if err != nil {
		// Data contains only strings and a bool; Marshal cannot fail on it.
		return ""
	}

	body := base64.RawURLEncoding.EncodeToString(payload)
	exp := strconv.FormatInt(expiry.Unix(), 10)
	sig := m.signature(body, exp)

	return body + "." + exp + "." + sig
}

// verify checks the signature and expiry, returning the decoded data.
func (m *Manager) verify(value string) (Data, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return Data{}, false
	}
	body, exp, sig := parts[0], parts[1], parts[2]

	want := m.signature(body, exp)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(want)) != 1 {
		return Data{}, false
	}

	expUnix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil || time.Now().Unix() > expUnix {
		return Data{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Data{}, false
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, false
	}

	return data, true
}

func (m *Manager) signature(body, exp string) string {
	mac := hmac.New(sha256.New, m.secret)
	fmt.Fprintf(mac, "%s.%s", body, exp)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
