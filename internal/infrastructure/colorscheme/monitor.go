package colorscheme

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/bnema/shade/internal/logging"
)

// Monitor follows desktop color scheme changes by watching the
// gsettings key and refreshing the resolver whenever it moves. On
// platforms without gsettings it reports unavailable and Start fails.
type Monitor struct {
	resolver *Resolver

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor bound to the given resolver.
func NewMonitor(resolver *Resolver) *Monitor {
	return &Monitor{resolver: resolver}
}

// Available reports whether the monitor can run on this system.
func (m *Monitor) Available() bool {
	_, err := exec.LookPath("gsettings")
	return err == nil
}

// Start launches the watcher subprocess. It returns once the process
// is running; change events are delivered through the resolver's
// subscriptions until Stop is called or the context is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return fmt.Errorf("monitor already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, "gsettings", "monitor", "org.gnome.desktop.interface", "color-scheme")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open monitor pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start gsettings monitor: %w", err)
	}

	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	logging.FromContext(ctx).Debug().Int("pid", cmd.Process.Pid).Msg("gsettings monitor started")
	go m.readLoop(ctx, stdout, cmd, done)
	return nil
}

// Stop terminates the watcher subprocess and waits for it to exit.
// Stopping a monitor that was never started is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) readLoop(ctx context.Context, stdout io.ReadCloser, cmd *exec.Cmd, done chan struct{}) {
	defer close(done)

	log := logging.FromContext(ctx)
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if _, ok := parseMonitorLine(line); !ok {
			continue
		}
		mode, known := m.resolver.Refresh(ctx)
		log.Debug().
			Str("line", line).
			Str("mode", string(mode)).
			Bool("known", known).
			Msg("color scheme monitor event")
	}
	if err := cmd.Wait(); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Msg("gsettings monitor exited")
	}
}

// parseMonitorLine extracts the value from a gsettings monitor line
// such as "color-scheme: 'prefer-dark'".
func parseMonitorLine(line string) (string, bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	value = strings.TrimSpace(value)
	value = strings.Trim(value, "'\"")
	if value == "" {
		return "", false
	}
	return value, true
}
