package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/memlab/pkg/display"
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/logging"
	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/render"
)

var benchFlags struct {
	types   []string
	count   int
	settle  time.Duration
	timeout time.Duration
	noColor bool
}

func init() {
	c := &cobra.Command{
		Use:   "bench",
		Short: "Create and remove views for each type and print the cost",
		Long: `Run the screen's create/remove cycle without a UI.

For every selected type, bench samples a baseline, renders the views, waits
for the render to land, samples again and reports the difference. The views
are then removed and a collection is requested before the next type.

Every row after the first is DIRTY: it inherits the heap left behind by the
rows before it. Run one type per process for clean numbers.`,
		Args: cobra.NoArgs,
		RunE: runBench,
	}
	f := c.Flags()
	f.StringSliceVar(&benchFlags.types, "type", nil, "component types to measure (default all)")
	f.IntVar(&benchFlags.count, "count", 0, "views per type (default from config)")
	f.DurationVar(&benchFlags.settle, "settle", 0, "pause between render and measurement (default sampling interval)")
	f.DurationVar(&benchFlags.timeout, "timeout", time.Minute, "maximum wait for a render to land")
	f.BoolVar(&benchFlags.noColor, "no-color", false, "disable colored output")
	registerCommand(c)
}

type benchRow struct {
	Type    factory.ComponentType
	Summary display.Summary
	Err     error
}

func runBench(c *cobra.Command, _ []string) error {
	if benchFlags.noColor {
		color.NoColor = true
	}
	count := benchFlags.count
	if count <= 0 {
		count = resolved.Count
	}
	settle := benchFlags.settle
	if settle <= 0 {
		settle = resolved.Interval
	}

	types := factory.Default().Types()
	if len(benchFlags.types) > 0 {
		types = types[:0:0]
		for _, t := range benchFlags.types {
			types = append(types, factory.ComponentType(t))
		}
	}

	s, err := newSession(resolved, render.Deferred)
	if err != nil {
		return err
	}
	if err := s.serve(resolved.DiagnosticsPort); err != nil {
		return err
	}
	defer s.stop()
	memory.WarmUp(s.sampler)

	rows := make([]benchRow, 0, len(types))
	for _, t := range types {
		row := benchRow{Type: t}
		row.Summary, row.Err = s.measure(c.Context(), t, count, settle)
		rows = append(rows, row)
	}
	return writeBench(c, rows)
}

// measure runs one create/remove cycle for t.
func (s *session) measure(ctx context.Context, t factory.ComponentType, count int, settle time.Duration) (display.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.controller.CreateN(t, count); err != nil {
		return display.Summary{}, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, benchFlags.timeout)
	defer cancel()
	if err := s.controller.Wait(waitCtx); err != nil {
		return display.Summary{}, fmt.Errorf("render did not land: %w", err)
	}
	time.Sleep(settle)

	s.controller.Tick(s.sampler.Read("current"))
	sum := display.Summarize(s.controller.State())
	logging.L().Info("bench row",
		zap.String("type", string(t)),
		zap.Int("rendered", sum.Rendered),
		zap.Int64("deltaBytes", sum.DeltaBytes),
	)

	s.controller.Remove()
	_ = s.controller.TriggerGC()
	return sum, nil
}

func writeBench(c *cobra.Command, rows []benchRow) error {
	out := c.OutOrStdout()
	fmt.Fprintf(out, "%s\n", display.Platform())

	dirty := color.New(color.FgYellow, color.Bold).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()

	table := newTable(out)
	table.Header([]string{"Type", "Rendered", "Before MB", "After MB", "Delta MB", "Per view KB", ""})
	for _, row := range rows {
		var cells []string
		if row.Err != nil {
			cells = []string{string(row.Type), "-", "-", "-", "-", "-", failed(row.Err.Error())}
		} else {
			sum := row.Summary
			flag := ""
			if sum.Dirty {
				flag = dirty("DIRTY")
			}
			cells = []string{
				string(row.Type),
				fmt.Sprint(sum.Rendered),
				sum.Before,
				sum.After,
				sum.Delta,
				sum.PerView,
				flag,
			}
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}
