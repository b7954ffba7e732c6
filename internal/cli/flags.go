package cli

import (
	"fmt"

	"github.com/alexanderramin/tomato/internal/config"
	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/spf13/pflag"
)

// clockFlag is a phase length given as "MM:SS" or minutes.
type clockFlag struct {
	phase domain.Phase
	value config.PhaseDuration
	set   bool
}

var _ pflag.Value = (*clockFlag)(nil)

func (f *clockFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", f.value.Minutes, f.value.Seconds)
}

func (f *clockFlag) Set(s string) error {
	d, err := config.ParseClock(s)
	if err != nil {
		return err
	}
	if err := domain.ValidateDuration(f.phase, d.Minutes, d.Seconds); err != nil {
		return err
	}
	f.value = d
	f.set = true
	return nil
}

func (f *clockFlag) Type() string { return "clock" }

// addPhaseFlags registers --work and --break on fs.
func addPhaseFlags(fs *pflag.FlagSet, work, brk *clockFlag) {
	work.phase, brk.phase = domain.PhaseWork, domain.PhaseBreak
	fs.Var(work, "work", "work length for this run (MM:SS or minutes)")
	fs.Var(brk, "break", "break length for this run (MM:SS or minutes)")
}

// runOptions are the per-run flags of `tomato run`.
type runOptions struct {
	start bool
	work  clockFlag
	brk   clockFlag
}

// overlay writes the --work and --break overrides onto cfg. It runs on
// the initial config and again on every reloaded one, so the overrides
// last for the whole run.
func (o runOptions) overlay(cfg *config.Config) {
	if o.work.set {
		cfg.Work = o.work.value
	}
	if o.brk.set {
		cfg.Break = o.brk.value
	}
}
