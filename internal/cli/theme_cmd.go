package cli

import (
	"fmt"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Theme: %s\n", app.Prefs.Theme(ctx))
				return nil
			}

			var (
				t   domain.Theme
				err error
			)
			switch args[0] {
			case "toggle":
				t, err = app.Prefs.ToggleTheme(ctx)
			case string(domain.ThemeLight), string(domain.ThemeDark):
				t, err = app.Prefs.SetTheme(ctx, domain.Theme(args[0]))
			default:
				return fmt.Errorf("unknown theme %q (want light, dark or toggle)", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme set to %s.\n", t)
			return nil
		},
	}
}
