package colormode_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/bnema/shade/pkg/colormode"
	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// domStub is the minimal scripting surface the bootstrap script needs
// outside a browser: a document root with classList/attributes/style, a
// localStorage, an interceptable document.cookie, and matchMedia.
// Placeholders inject the starting state as JS literals: stored value,
// system preference, existing root marker (null when absent), and the
// storage key.
const domStub = `
var __stored = %s;
var __system = %s;
var __marker = %s;
var __key = %s;
var __storageWrites = 0;
var __cookieJar = '';
var __cookieWrites = 0;
var __mediaListeners = [];

var document = {
  documentElement: {
    __classes: {},
    __attrs: {},
    classList: {
      add: function(c) { document.documentElement.__classes[c] = true; },
      remove: function() {
        for (var i = 0; i < arguments.length; i++) {
          delete document.documentElement.__classes[arguments[i]];
        }
      }
    },
    setAttribute: function(k, v) { document.documentElement.__attrs[k] = String(v); },
    getAttribute: function(k) {
      return Object.prototype.hasOwnProperty.call(document.documentElement.__attrs, k)
        ? document.documentElement.__attrs[k]
        : null;
    },
    style: {
      __props: {},
      setProperty: function(k, v) { document.documentElement.style.__props[k] = String(v); }
    }
  }
};

Object.defineProperty(document, 'cookie', {
  get: function() { return __cookieJar; },
  set: function(v) { __cookieWrites++; __cookieJar = String(v); }
});

var localStorage = {
  __items: {},
  getItem: function(k) {
    return Object.prototype.hasOwnProperty.call(this.__items, k) ? this.__items[k] : null;
  },
  setItem: function(k, v) { __storageWrites++; this.__items[k] = String(v); }
};

var window = {
  matchMedia: function(q) {
    if (__system === null) { throw new Error('matchMedia unavailable'); }
    return {
      matches: __system === 'dark',
      media: q,
      addEventListener: function(type, fn) { __mediaListeners.push(fn); },
      addListener: function(fn) { __mediaListeners.push(fn); }
    };
  }
};

if (__stored !== null) {
  localStorage.__items[__key] = __stored;
  __cookieJar = __key + '=' + __stored;
}
if (__marker !== null) {
  document.documentElement.__attrs['data-color-mode'] = __marker;
}
`

func jsValue(s string) string {
	if s == "" {
		return "null"
	}
	return strconv.Quote(s)
}

func scriptKey(opts colormode.ScriptOptions) string {
	if opts.Key != "" {
		return opts.Key
	}
	return colormode.StorageKey
}

// newBootstrapVM seeds the DOM stub and runs the generated script.
// Empty stored/system/marker mean absent.
func newBootstrapVM(t *testing.T, opts colormode.ScriptOptions, stored, system, marker string) *sobek.Runtime {
	t.Helper()

	vm := sobek.New()
	stub := fmt.Sprintf(domStub, jsValue(stored), jsValue(system), jsValue(marker), strconv.Quote(scriptKey(opts)))
	_, err := vm.RunString(stub)
	require.NoError(t, err)

	_, err = vm.RunString(colormode.Script(opts))
	require.NoError(t, err)
	return vm
}

func evalString(t *testing.T, vm *sobek.Runtime, expr string) string {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err)
	return v.String()
}

func evalInt(t *testing.T, vm *sobek.Runtime, expr string) int64 {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err)
	return v.ToInteger()
}

func appliedMode(t *testing.T, vm *sobek.Runtime) string {
	t.Helper()
	return evalString(t, vm, `document.documentElement.getAttribute('data-color-mode') || ''`)
}

func appliedClass(t *testing.T, vm *sobek.Runtime) string {
	t.Helper()
	return evalString(t, vm, `document.documentElement.__classes['dark'] ? 'dark' : (document.documentElement.__classes['light'] ? 'light' : '')`)
}

func lookupFor(raw string) colormode.Lookup {
	m, ok := colormode.ParseMode(raw)
	if !ok {
		return nil
	}
	return func() (colormode.Mode, bool) { return m, true }
}

// The generated script and Resolve must agree on every combination of
// signals, otherwise the pre-paint mode and the engine's mode can
// differ and the page flashes.
func TestBootstrapScript_ParityWithResolve(t *testing.T) {
	initials := []colormode.InitialMode{colormode.InitialLight, colormode.InitialDark, colormode.InitialSystem}
	storedValues := []string{"", "light", "dark", "system"} // "system" is an invalid persisted literal
	systemValues := []string{"", "light", "dark"}
	markerValues := []string{"", "light", "dark"}

	for _, useSystem := range []bool{false, true} {
		for _, initial := range initials {
			for _, stored := range storedValues {
				for _, system := range systemValues {
					for _, marker := range markerValues {
						name := fmt.Sprintf("useSystem=%t/initial=%s/stored=%s/system=%s/marker=%s",
							useSystem, initial, orAbsent(stored), orAbsent(system), orAbsent(marker))
						t.Run(name, func(t *testing.T) {
							cfg := colormode.Config{Initial: initial, UseSystem: useSystem}
							want := colormode.Resolve(cfg, lookupFor(marker), lookupFor(stored), lookupFor(system))

							vm := newBootstrapVM(t, colormode.ScriptOptions{Config: cfg}, stored, system, marker)

							assert.Equal(t, string(want.Mode), appliedMode(t, vm))
							assert.Equal(t, string(want.Mode), appliedClass(t, vm))
							assert.Equal(t, string(want.Mode), evalString(t, vm, `document.documentElement.style.__props['--color-mode'] || ''`))
						})
					}
				}
			}
		}
	}
}

func orAbsent(s string) string {
	if s == "" {
		return "absent"
	}
	return s
}

func TestBootstrapScript_SeedsStorageWhenAbsent(t *testing.T) {
	opts := colormode.ScriptOptions{Config: colormode.Config{Initial: colormode.InitialDark}}
	vm := newBootstrapVM(t, opts, "", "", "")

	assert.Equal(t, "dark", appliedMode(t, vm))
	assert.Equal(t, "dark", evalString(t, vm, `localStorage.getItem(__key) || ''`))
	assert.EqualValues(t, 1, evalInt(t, vm, `__storageWrites`))
}

func TestBootstrapScript_NoWriteWhenStoredMatches(t *testing.T) {
	opts := colormode.ScriptOptions{Config: colormode.DefaultConfig()}
	vm := newBootstrapVM(t, opts, "dark", "", "")

	assert.Equal(t, "dark", appliedMode(t, vm))
	assert.EqualValues(t, 0, evalInt(t, vm, `__storageWrites`))
}

func TestBootstrapScript_RewritesMalformedStored(t *testing.T) {
	// A stored "system" is not a valid literal; it reads as absent and
	// the computed mode replaces it
	opts := colormode.ScriptOptions{Config: colormode.DefaultConfig()}
	vm := newBootstrapVM(t, opts, "system", "", "")

	assert.Equal(t, "light", appliedMode(t, vm))
	assert.Equal(t, "light", evalString(t, vm, `localStorage.getItem(__key) || ''`))
}

func TestBootstrapScript_CookieBackend(t *testing.T) {
	opts := colormode.ScriptOptions{
		Config:  colormode.DefaultConfig(),
		Storage: colormode.StoreKindCookie,
	}
	vm := newBootstrapVM(t, opts, "dark", "", "")

	// Reads the mode from the cookie jar, not localStorage
	assert.Equal(t, "dark", appliedMode(t, vm))
	assert.EqualValues(t, 0, evalInt(t, vm, `__cookieWrites`))
	assert.EqualValues(t, 0, evalInt(t, vm, `__storageWrites`))
}

func TestBootstrapScript_CookieBackendSeeds(t *testing.T) {
	opts := colormode.ScriptOptions{
		Config:  colormode.Config{Initial: colormode.InitialDark},
		Storage: colormode.StoreKindCookie,
	}
	vm := newBootstrapVM(t, opts, "", "", "")

	assert.EqualValues(t, 1, evalInt(t, vm, `__cookieWrites`))
	jar := evalString(t, vm, `document.cookie`)
	assert.Contains(t, jar, colormode.StorageKey+"=dark")
	assert.Contains(t, jar, "max-age=31536000")
	assert.Contains(t, jar, "path=/")
}

func TestBootstrapScript_ServerMarkerWins(t *testing.T) {
	// A server-rendered page already carries the marker; the script
	// must keep it over a conflicting stored value
	opts := colormode.ScriptOptions{Config: colormode.DefaultConfig()}
	vm := newBootstrapVM(t, opts, "light", "", "dark")

	assert.Equal(t, "dark", appliedMode(t, vm))
}

func TestBootstrapScript_FollowsSystemFlips(t *testing.T) {
	opts := colormode.ScriptOptions{Config: colormode.Config{UseSystem: true}}
	vm := newBootstrapVM(t, opts, "", "dark", "")

	require.Equal(t, "dark", appliedMode(t, vm))
	require.EqualValues(t, 1, evalInt(t, vm, `__mediaListeners.length`))

	_, err := vm.RunString(`__mediaListeners[0]({ matches: false })`)
	require.NoError(t, err)
	assert.Equal(t, "light", appliedMode(t, vm))
}

func TestBootstrapScript_NoListenerWithoutFlag(t *testing.T) {
	opts := colormode.ScriptOptions{Config: colormode.Config{Initial: colormode.InitialSystem}}
	vm := newBootstrapVM(t, opts, "", "light", "")

	assert.Equal(t, "light", appliedMode(t, vm))
	assert.EqualValues(t, 0, evalInt(t, vm, `__mediaListeners.length`))
}

func TestBootstrapScript_CustomKey(t *testing.T) {
	opts := colormode.ScriptOptions{
		Config: colormode.Config{Initial: colormode.InitialDark},
		Key:    "my-theme",
	}
	vm := newBootstrapVM(t, opts, "", "", "")

	assert.Equal(t, "dark", evalString(t, vm, `localStorage.getItem('my-theme') || ''`))
}

func TestScriptTag(t *testing.T) {
	tag := string(colormode.ScriptTag(colormode.ScriptOptions{Config: colormode.DefaultConfig()}))
	assert.True(t, strings.HasPrefix(tag, "<script>"))
	assert.True(t, strings.HasSuffix(tag, "</script>"))
	assert.NotContains(t, tag, "nonce")

	withNonce := string(colormode.ScriptTag(colormode.ScriptOptions{
		Config: colormode.DefaultConfig(),
		Nonce:  "abc123",
	}))
	assert.Contains(t, withNonce, `<script nonce="abc123">`)
}

func TestRootAttrs(t *testing.T) {
	assert.Equal(t,
		`class="dark" data-color-mode="dark" style="--color-mode: dark;"`,
		string(colormode.RootAttrs(colormode.ModeDark)))
	assert.Equal(t,
		`class="light" data-color-mode="light" style="--color-mode: light;"`,
		string(colormode.RootAttrs(colormode.ModeLight)))

	// Invalid input degrades to light rather than emitting garbage markup
	assert.Equal(t,
		`class="light" data-color-mode="light" style="--color-mode: light;"`,
		string(colormode.RootAttrs(colormode.Mode("system"))))
}

func TestResolveRequest(t *testing.T) {
	cfg := colormode.Config{Initial: colormode.InitialDark}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: colormode.StorageKey, Value: "light"})

	res, store := colormode.ResolveRequest(cfg, r, colormode.CookieOptions{})
	assert.Equal(t, colormode.ModeLight, res.Mode)
	assert.Equal(t, colormode.SourceStored, res.Source)
	require.NotNil(t, store)

	// Without a cookie the declared initial applies; a server never
	// sees the client's platform preference
	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	res, _ = colormode.ResolveRequest(cfg, bare, colormode.CookieOptions{})
	assert.Equal(t, colormode.ModeDark, res.Mode)
	assert.Equal(t, colormode.SourceDefault, res.Source)
}
