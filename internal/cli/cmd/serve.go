package cmd

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/shade/assets"
	"github.com/bnema/shade/internal/config"
	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

const serveShutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the server-rendered demo page",
	Long: `Starts a small HTTP server that renders the demo page with the
resolved color mode baked into the markup. The page carries the inline
bootstrap script, so the browser applies the saved mode before first
paint, and the mode buttons persist the choice through the cookie
backend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)

	srv, err := newDemoServer(app.Config)
	if err != nil {
		return err
	}

	// Pick up config edits without a restart. The next request renders
	// with the new initial mode and cookie options.
	if app.ConfigManager != nil {
		app.ConfigManager.OnConfigChange(func(cfg *config.Config) {
			srv.applyConfig(cfg)
			log.Info().Msg("configuration reloaded")
		})
		if err := app.ConfigManager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	addr := serveAddr
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("demo server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("demo server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down demo server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// demoServer renders the demo page and handles mode changes. The config
// is swapped as a whole on reload, so requests never see a half-applied
// edit.
type demoServer struct {
	mu   sync.RWMutex
	cfg  *config.Config
	tmpl *template.Template
}

func newDemoServer(cfg *config.Config) (*demoServer, error) {
	tmpl, err := template.New("demo").Parse(assets.DemoPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse demo template: %w", err)
	}
	return &demoServer{cfg: cfg, tmpl: tmpl}, nil
}

func (s *demoServer) applyConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *demoServer) snapshot() (colormode.Config, colormode.CookieOptions) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.ColorMode.ModeConfig(), s.cfg.Cookie.Options()
}

func (s *demoServer) routes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /colormode", s.handleSet)
	mux.HandleFunc("POST /colormode/toggle", s.handleToggle)
	return requestLogger(ctx, mux)
}

// demoPageData feeds the demo page template.
type demoPageData struct {
	RootAttrs template.HTMLAttr
	Bootstrap template.HTML
	Mode      colormode.Mode
	Source    string
	Stored    string
	UseSystem bool
}

func (s *demoServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	modeCfg, cookieOpts := s.snapshot()
	res, store := colormode.ResolveRequest(modeCfg, r, cookieOpts)

	nonce, err := newNonce()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	stored := "absent"
	if mode, ok := store.Get(r.Context()); ok {
		stored = string(mode)
	}

	data := demoPageData{
		RootAttrs: colormode.RootAttrs(res.Mode),
		Bootstrap: colormode.ScriptTag(colormode.ScriptOptions{
			Config:       modeCfg,
			Storage:      colormode.StoreKindCookie,
			Key:          cookieOpts.Name,
			CookieMaxAge: cookieOpts.MaxAge,
			Nonce:        nonce,
		}),
		Mode:      res.Mode,
		Source:    res.Source,
		Stored:    stored,
		UseSystem: modeCfg.UseSystem,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("failed to render demo page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", fmt.Sprintf("script-src 'nonce-%s'", nonce))
	_, _ = buf.WriteTo(w)
}

func (s *demoServer) handleSet(w http.ResponseWriter, r *http.Request) {
	_, cookieOpts := s.snapshot()

	raw := r.PostFormValue("mode")
	mode, ok := colormode.ParseMode(raw)
	if !ok {
		http.Error(w, fmt.Sprintf("invalid color mode %q (want light or dark)", raw), http.StatusBadRequest)
		return
	}

	store := colormode.CookieStoreFromRequest(r, cookieOpts)
	if err := store.Set(r.Context(), mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store.WriteResponse(w)

	logging.FromContext(r.Context()).Debug().Str("mode", string(mode)).Msg("color mode set")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *demoServer) handleToggle(w http.ResponseWriter, r *http.Request) {
	modeCfg, cookieOpts := s.snapshot()
	res, store := colormode.ResolveRequest(modeCfg, r, cookieOpts)

	next := res.Mode.Opposite()
	if err := store.Set(r.Context(), next); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store.WriteResponse(w)

	logging.FromContext(r.Context()).Debug().Str("mode", string(next)).Msg("color mode toggled")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// newNonce returns a fresh value for the page's script-src policy.
func newNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(ctx context.Context, next http.Handler) http.Handler {
	logger := *logging.FromContext(ctx)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.WithContext(r.Context(), logger)))
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
