package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Runner starts a command without waiting for it to exit.
type Runner func(name string, args ...string) error

// helperTimeout bounds how long a notification helper may run.
const helperTimeout = 5 * time.Second

// Desktop shows an OS notification through notify-send on Linux or
// osascript on macOS. Send never blocks on the helper process.
type Desktop struct {
	bin   string
	build func(title, body string) []string
	run   Runner
}

// DesktopOption customises NewDesktop.
type DesktopOption func(*desktopConfig)

type desktopConfig struct {
	goos     string
	lookPath func(string) (string, error)
	run      Runner
}

func withGOOS(goos string) DesktopOption {
	return func(c *desktopConfig) { c.goos = goos }
}

func withLookPath(f func(string) (string, error)) DesktopOption {
	return func(c *desktopConfig) { c.lookPath = f }
}

// WithRunner replaces process spawning.
func WithRunner(r Runner) DesktopOption {
	return func(c *desktopConfig) { c.run = r }
}

// NewDesktop locates the platform helper. It returns ErrUnavailable when
// none is installed.
func NewDesktop(opts ...DesktopOption) (*Desktop, error) {
	cfg := desktopConfig{goos: runtime.GOOS, lookPath: exec.LookPath, run: startDetached}
	for _, opt := range opts {
		opt(&cfg)
	}

	var name string
	var build func(title, body string) []string
	switch cfg.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		name = "notify-send"
		build = func(title, body string) []string {
			return []string{"--app-name=tomato", title, body}
		}
	case "darwin":
		name = "osascript"
		build = func(title, body string) []string {
			script := fmt.Sprintf("display notification %s with title %s", appleQuote(body), appleQuote(title))
			return []string{"-e", script}
		}
	default:
		return nil, fmt.Errorf("%w on %s", ErrUnavailable, cfg.goos)
	}

	bin, err := cfg.lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, name)
	}
	return &Desktop{bin: bin, build: build, run: cfg.run}, nil
}

func (d *Desktop) Send(title, body string) error {
	if err := d.run(d.bin, d.build(title, body)...); err != nil {
		return fmt.Errorf("running %s: %w", d.bin, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}
	go func() {
		defer cancel()
		_ = cmd.Wait()
	}()
	return nil
}

func appleQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
