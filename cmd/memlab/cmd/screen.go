package cmd

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/memlab/cmd/memlab/internal/tui"
	"github.com/go-drift/memlab/pkg/logging"
)

func init() {
	registerCommand(&cobra.Command{
		Use:   "screen",
		Short: "Open the interactive memory-profiling screen",
		Long: `Open the interactive memory-profiling screen.

Pick a component type, enter a count and press enter to render that many
instances. The screen samples process memory every interval and shows the
footprint before and after, the delta and the cost per view. Press r to
remove the views and g to request a garbage collection.

Measurements after the first create or remove are marked DIRTY: earlier
allocations and collections skew them. Restart for a clean reading.`,
		Args: cobra.NoArgs,
		RunE: runScreen,
	})
}

func runScreen(c *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("screen needs a terminal; use \"memlab bench\" for scripted runs")
	}
	// Log lines would tear the UI; without a log file, drop them.
	if resolved.LogFile == "" {
		logging.Set(nil)
	}

	s, err := newSession(resolved, hintFor(resolved.Deferred))
	if err != nil {
		return err
	}
	if err := s.start(resolved.DiagnosticsPort); err != nil {
		return err
	}
	defer s.stop()

	program := tea.NewProgram(tui.New(s.controller, resolved.Interval), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
