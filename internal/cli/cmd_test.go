package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/repository"
	"github.com/alexanderramin/tomato/internal/service"
	"github.com/alexanderramin/tomato/internal/stats"
	"github.com/alexanderramin/tomato/internal/testutil"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// testApp wires an App over an in-memory DB with short phases and no
// config watcher.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	kv := repository.NewSQLiteKVRepo(db)

	cfg := config.DefaultConfig()
	cfg.Work = config.PhaseDuration{Seconds: 3}
	cfg.Break = config.PhaseDuration{Seconds: 2}
	cfg.Watch = false
	cfg.MetricsTextfile = ""

	return &App{
		Config: cfg,
		KV:     kv,
		Stats:  service.NewStatsService(kv, testutil.NewTestUoW(db), nil),
		Prefs:  service.NewPreferencesService(kv),
	}
}

// executeCmd runs the root command with args and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Pomodoro timer")
	assert.Contains(t, out, "stats")
	assert.Contains(t, out, "theme")
}

func TestStatsCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "SESSIONS")
	assert.Contains(t, out, "No sessions recorded yet.")
}

func TestStatsCmd_ShowsPersistedCounts(t *testing.T) {
	app := testApp(t)
	testutil.SeedStats(app.KV, stats.Key, domain.SessionStats{WorkSessionsCompleted: 1200, BreakSessionsCompleted: 3})

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "Last recorded")
}

func TestStatsCmd_MalformedRecordReadsAsZero(t *testing.T) {
	app := testApp(t)
	require.NoError(t, app.KV.Set(context.Background(), stats.Key, "{not json"))

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Work")
	assert.NotContains(t, out, "1,")
}

func TestStatsCmd_Textfile(t *testing.T) {
	app := testApp(t)
	testutil.SeedStats(app.KV, stats.Key, domain.SessionStats{WorkSessionsCompleted: 4, BreakSessionsCompleted: 2})
	path := filepath.Join(t.TempDir(), "tomato.prom")

	_, err := executeCmd(t, app, "stats", "--textfile", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tomato_sessions_completed{phase="work"} 4`)
	assert.Contains(t, string(data), `tomato_sessions_completed{phase="break"} 2`)
	assert.Contains(t, string(data), `tomato_phase_duration_seconds{phase="work"} 3`)
}

func TestStatsResetCmd(t *testing.T) {
	app := testApp(t)
	testutil.SeedStats(app.KV, stats.Key, domain.SessionStats{WorkSessionsCompleted: 5, BreakSessionsCompleted: 4})

	out, err := executeCmd(t, app, "stats", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Stats reset (was 5 work · 4 break).")

	snap, err := app.Stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStats{}, snap.Stats)
}

func TestThemeCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: light\n", out)

	out, err = executeCmd(t, app, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "Theme set to dark.\n", out)

	out, err = executeCmd(t, app, "theme", "light")
	require.NoError(t, err)
	assert.Equal(t, "Theme set to light.\n", out)

	rec, err := app.KV.Get(context.Background(), service.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", rec.Value)
}

func TestThemeCmd_RejectsUnknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "theme", "solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "solarized"`)
}

func TestThemeCmd_PersistFailureIsReported(t *testing.T) {
	app := testApp(t)
	kv := testutil.NewMemoryKV()
	kv.FailWrites = assert.AnError
	app.Prefs = service.NewPreferencesService(kv)

	_, err := executeCmd(t, app, "theme", "dark")
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, domain.ThemeDark, app.Prefs.Theme(context.Background()))
}

func TestConfigShowCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Work.Seconds)
	assert.Equal(t, 2, got.Break.Seconds)
	assert.True(t, got.AutoChain)
	assert.Equal(t, app.Config.CompletionDelay, got.CompletionDelay)
}

func TestConfigPathCmd(t *testing.T) {
	app := testApp(t)
	app.Config.Path = "/tmp/tomato-test.yaml"

	out, err := executeCmd(t, app, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tomato-test.yaml\n", out)
}

func TestRunCmd_HeadlessWithPhaseFlags(t *testing.T) {
	app := testApp(t)
	app.Clock = clockwork.NewFakeClock()
	app.In = strings.NewReader("p\nq\n")

	out, err := executeCmd(t, app, "run", "--headless", "--work", "0:05", "--break", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "status   work  00:05 idle")
	assert.Contains(t, out, "bye")

	d, err := app.Config.Durations()
	require.NoError(t, err)
	assert.Equal(t, 60, d.Total(domain.PhaseBreak))
}

func TestRunCmd_RejectsBadPhaseFlag(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "run", "--headless", "--break", "0:75")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seconds must be between 0 and 59")
}
