package colormode

import (
	"fmt"
	"html/template"
	"net/http"
)

// bootstrapScript applies the color mode before first paint. It runs
// the same priority order as Resolve: an existing root marker (set by a
// server-rendered page), then storage, then the declared initial, with
// the forced-system flag short-circuiting everything. Placeholders are
// the storage key, the forced-system flag, the declared initial mode,
// the cookie-backend flag, and the cookie max-age.
//
// The script is deliberately ES5 and fully synchronous. Storage and
// matchMedia failures fall through to the declared fallback instead of
// throwing.
const bootstrapScript = `(function(){
  var root = document.documentElement;
  var key = %q;
  var useSystem = %t;
  var initial = %q;
  var useCookie = %t;

  function valid(mode) { return mode === 'light' || mode === 'dark'; }

  function read() {
    try {
      if (useCookie) {
        var parts = document.cookie.split('; ');
        for (var i = 0; i < parts.length; i++) {
          if (parts[i].indexOf(key + '=') === 0) {
            return parts[i].slice(key.length + 1);
          }
        }
        return null;
      }
      return localStorage.getItem(key);
    } catch (_) { return null; }
  }

  function write(mode) {
    try {
      if (useCookie) {
        document.cookie = key + '=' + mode + '; max-age=%d; path=/';
      } else {
        localStorage.setItem(key, mode);
      }
    } catch (_) {}
  }

  function systemMode() {
    try {
      return window.matchMedia('(prefers-color-scheme: dark)').matches ? 'dark' : 'light';
    } catch (_) { return null; }
  }

  function apply(mode) {
    root.classList.remove('light', 'dark');
    root.classList.add(mode);
    root.setAttribute('data-color-mode', mode);
    root.style.setProperty('--color-mode', mode);
  }

  var stored = read();
  if (!valid(stored)) stored = null;
  var marker = root.getAttribute('data-color-mode');

  var mode;
  if (useSystem) {
    mode = systemMode();
    if (!valid(mode)) mode = initial === 'dark' ? 'dark' : 'light';
  } else if (valid(marker)) {
    mode = marker;
  } else if (stored) {
    mode = stored;
  } else if (initial === 'system') {
    mode = systemMode();
    if (!valid(mode)) mode = 'light';
  } else {
    mode = initial === 'dark' ? 'dark' : 'light';
  }

  apply(mode);
  if (stored !== mode) write(mode);

  if (useSystem) {
    try {
      var media = window.matchMedia('(prefers-color-scheme: dark)');
      var onChange = function(ev) { apply(ev.matches ? 'dark' : 'light'); };
      if (media.addEventListener) { media.addEventListener('change', onChange); }
      else if (media.addListener) { media.addListener(onChange); }
    } catch (_) {}
  }
})();`

// ScriptOptions configure the generated bootstrap script. Zero fields
// take the defaults.
type ScriptOptions struct {
	Config Config

	// Storage selects the browser backend the script reads and writes,
	// localStorage or document.cookie. Defaults to local.
	Storage StoreKind

	// Key overrides the storage key. Defaults to StorageKey.
	Key string

	// CookieMaxAge is the max-age of client-written cookies, in
	// seconds. Defaults to one year. Ignored for the local backend.
	CookieMaxAge int

	// Nonce is emitted on the script element for pages running under a
	// Content-Security-Policy.
	Nonce string
}

// Script returns the synchronous bootstrap JavaScript. It re-derives
// the mode with the same priority order as Resolve, applies the root
// marker, and seeds storage when the computed mode differs from the
// stored value. Inline it before any page content; it performs no
// asynchronous work and issues no requests, so the first paint already
// carries the right mode.
func Script(opts ScriptOptions) string {
	key := opts.Key
	if key == "" {
		key = StorageKey
	}
	initial := opts.Config.Initial
	if _, ok := ParseInitialMode(string(initial)); !ok {
		initial = InitialLight
	}
	maxAge := opts.CookieMaxAge
	if maxAge <= 0 {
		maxAge = DefaultCookieOptions().MaxAge
	}
	useCookie := opts.Storage == StoreKindCookie

	return fmt.Sprintf(bootstrapScript, key, opts.Config.UseSystem, initial, useCookie, maxAge)
}

// ScriptTag wraps Script in an inline script element, carrying the CSP
// nonce when one is set.
func ScriptTag(opts ScriptOptions) template.HTML {
	js := Script(opts)
	if opts.Nonce != "" {
		return template.HTML(fmt.Sprintf("<script nonce=%q>%s</script>", opts.Nonce, js))
	}
	return template.HTML("<script>" + js + "</script>")
}

// RootAttrs renders the global marker for the document root element:
// the mode as a class token, a data attribute, and the custom property
// the styling layer reads. Invalid modes render as light.
func RootAttrs(mode Mode) template.HTMLAttr {
	m, ok := ParseMode(string(mode))
	if !ok {
		m = ModeLight
	}
	attrs := fmt.Sprintf(`class=%q data-color-mode=%q style="--color-mode: %s;"`, m, m, m)
	return template.HTMLAttr(attrs)
}

// ResolveRequest performs the server half of the bootstrap for one
// request: it builds a cookie store from the request and resolves the
// mode with no marker and no system input, a server cannot observe the
// client's platform preference. Render the resolution with RootAttrs
// and ScriptTag, and reuse the returned store to persist handler-driven
// changes on the response.
func ResolveRequest(cfg Config, r *http.Request, opts CookieOptions) (Resolution, *CookieStore) {
	store := CookieStoreFromRequest(r, opts)
	res := Resolve(cfg, nil, func() (Mode, bool) {
		return store.Get(r.Context())
	}, nil)
	return res, store
}
