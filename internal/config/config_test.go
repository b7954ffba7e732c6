package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TOMATO_CONFIG", "TOMATO_DB", "TOMATO_WORK", "TOMATO_BREAK", "TOMATO_AUTO_CHAIN",
		"TOMATO_LOG_LEVEL", "TOMATO_LOG_FILE", "TOMATO_METRICS_TEXTFILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, PhaseDuration{Minutes: 25}, cfg.Work)
	assert.Equal(t, PhaseDuration{Minutes: 5}, cfg.Break)
	assert.True(t, cfg.AutoChain)
	assert.Equal(t, 500*time.Millisecond, cfg.CompletionDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.SkipDelay)
	assert.True(t, cfg.Watch)
	assert.Empty(t, cfg.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
work: {minutes: 50, seconds: 30}
break: {minutes: 10}
auto_chain: false
completion_delay: 1s
notifications: {desktop: false, bell: true}
db_path: `+filepath.Join(dir, "x.db")+`
log_level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, PhaseDuration{Minutes: 50, Seconds: 30}, cfg.Work)
	assert.Equal(t, PhaseDuration{Minutes: 10}, cfg.Break)
	assert.False(t, cfg.AutoChain)
	assert.Equal(t, time.Second, cfg.CompletionDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.SkipDelay, "unset keys keep defaults")
	assert.False(t, cfg.Notifications.Desktop)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, p, cfg.Path)

	d, err := cfg.Durations()
	require.NoError(t, err)
	assert.Equal(t, 3030, d.Total(domain.PhaseWork))
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "config.yaml", "")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, PhaseDuration{Minutes: 25}, cfg.Work)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"zero work":      "work: {minutes: 0, seconds: 0}",
		"minutes high":   "break: {minutes: 61}",
		"seconds high":   "work: {minutes: 1, seconds: 60}",
		"negative delay": "skip_delay: -1s",
		"bad level":      "log_level: loud",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "config.yaml", body)
			_, err := Load(p)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_InvalidDurationKeepsDomainError(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "config.yaml", "work: {minutes: 0, seconds: 0}")
	_, err := Load(p)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestLoad_UnknownKeyIsParseError(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "config.yaml", "wrok: {minutes: 1}")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "config.yaml", "work: {minutes: 50}\nauto_chain: true")
	t.Setenv("TOMATO_WORK", "12:34")
	t.Setenv("TOMATO_BREAK", "3")
	t.Setenv("TOMATO_AUTO_CHAIN", "false")
	t.Setenv("TOMATO_DB", "/tmp/other.db")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, PhaseDuration{Minutes: 12, Seconds: 34}, cfg.Work)
	assert.Equal(t, PhaseDuration{Minutes: 3}, cfg.Break)
	assert.False(t, cfg.AutoChain)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
}

func TestLoad_BadEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOMATO_AUTO_CHAIN", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    PhaseDuration
		wantErr bool
	}{
		{"25", PhaseDuration{Minutes: 25}, false},
		{"0:45", PhaseDuration{Seconds: 45}, false},
		{" 60:59 ", PhaseDuration{Minutes: 60, Seconds: 59}, false},
		{"ab", PhaseDuration{}, true},
		{"1:xx", PhaseDuration{}, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "TOMATO_LOG_LEVEL=warn\nTOMATO_DB=/from/dotenv.db\n")
	t.Setenv("TOMATO_DB", "/already/set.db")
	// godotenv treats an empty-but-present variable as set.
	require.NoError(t, os.Unsetenv("TOMATO_LOG_LEVEL"))
	t.Cleanup(func() { os.Unsetenv("TOMATO_LOG_LEVEL") })

	require.NoError(t, LoadEnvFile(p))
	assert.Equal(t, "warn", os.Getenv("TOMATO_LOG_LEVEL"))
	assert.Equal(t, "/already/set.db", os.Getenv("TOMATO_DB"), "existing env wins")

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestDefaultPath_HonoursEnv(t *testing.T) {
	t.Setenv("TOMATO_CONFIG", "/etc/tomato.yaml")
	assert.Equal(t, "/etc/tomato.yaml", DefaultPath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandHome("~/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db"))
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	cfg.Work = PhaseDuration{Minutes: 45}

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "completion_delay: 500ms")

	p := writeFile(t, t.TempDir(), "config.yaml", out)
	back, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg.Work, back.Work)
	assert.Equal(t, cfg.SkipDelay, back.SkipDelay)
}
