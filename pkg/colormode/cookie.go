package colormode

import (
	"context"
	"fmt"
	"net/http"
)

// CookieOptions shape the Set-Cookie emission of a CookieStore. Zero
// fields take the defaults.
type CookieOptions struct {
	// Name of the cookie. Defaults to StorageKey.
	Name string

	// Path defaults to "/".
	Path string

	// MaxAge in seconds. Defaults to one year.
	MaxAge int

	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions returns the options the bundled server helpers
// use: the well-known name, site-wide path, one-year lifetime, lax
// same-site.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Name:     StorageKey,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieStore reads the chosen mode from an HTTP cookie and records a
// pending write for the response. It is built purely from a raw Cookie
// header value, with no ambient request machinery, so it works in any
// server-rendered context.
//
// Set cannot reach the caller's cookie jar directly. It records the
// value, Get reflects it immediately, and the owner emits it as a
// Set-Cookie header through Cookie or WriteResponse. In the browser the
// generated client script writes document.cookie itself.
//
// A CookieStore belongs to a single request and is not safe for
// concurrent use.
type CookieStore struct {
	opts       CookieOptions
	value      Mode
	present    bool
	pending    Mode
	hasPending bool
}

// NewCookieStore returns a store with no request cookie, as on a first
// visit.
func NewCookieStore(opts CookieOptions) *CookieStore {
	def := DefaultCookieOptions()
	if opts.Name == "" {
		opts.Name = def.Name
	}
	if opts.Path == "" {
		opts.Path = def.Path
	}
	if opts.MaxAge == 0 {
		opts.MaxAge = def.MaxAge
	}
	if opts.SameSite == 0 {
		opts.SameSite = def.SameSite
	}
	return &CookieStore{opts: opts}
}

// CookieStoreFromHeader parses a raw Cookie header value. Malformed
// headers and unrecognized values read as absent. When the header
// repeats the cookie, the last occurrence wins.
func CookieStoreFromHeader(header string, opts CookieOptions) *CookieStore {
	s := NewCookieStore(opts)
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return s
	}
	for _, c := range cookies {
		if c.Name != s.opts.Name {
			continue
		}
		if m, ok := ParseMode(c.Value); ok {
			s.value = m
			s.present = true
		}
	}
	return s
}

// CookieStoreFromRequest builds a store from the request's Cookie
// header.
func CookieStoreFromRequest(r *http.Request, opts CookieOptions) *CookieStore {
	return CookieStoreFromHeader(r.Header.Get("Cookie"), opts)
}

// Get returns the mode carried by the request cookie. A pending Set in
// this request wins over the inbound value.
func (s *CookieStore) Get(_ context.Context) (Mode, bool) {
	if s.hasPending {
		return s.pending, true
	}
	return s.value, s.present
}

// Set records the mode for emission on the response.
func (s *CookieStore) Set(_ context.Context, mode Mode) error {
	m, ok := ParseMode(string(mode))
	if !ok {
		return fmt.Errorf("invalid color mode %q", mode)
	}
	s.pending = m
	s.hasPending = true
	return nil
}

// Kind implements Store.
func (s *CookieStore) Kind() StoreKind {
	return StoreKindCookie
}

// Cookie returns the pending Set-Cookie value recorded by Set, if any.
func (s *CookieStore) Cookie() (*http.Cookie, bool) {
	if !s.hasPending {
		return nil, false
	}
	return &http.Cookie{
		Name:     s.opts.Name,
		Value:    string(s.pending),
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		MaxAge:   s.opts.MaxAge,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	}, true
}

// WriteResponse emits the pending cookie on w, if Set recorded one.
func (s *CookieStore) WriteResponse(w http.ResponseWriter) {
	if c, ok := s.Cookie(); ok {
		http.SetCookie(w, c)
	}
}
