package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nikbrunner/bmdeck/internal/layout"
	"github.com/nikbrunner/bmdeck/internal/model"
)

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 80

func newColumnsCmd(app *App) *cobra.Command {
	var (
		width int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show how folders are distributed across board columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			cfg := app.columnConfig()
			out := cmd.OutOrStdout()

			cells := width
			if cells <= 0 {
				cells = terminalWidth()
			}
			printColumns(out, s.Folders(), cells, cfg)
			if !watch {
				return nil
			}

			// Serialize output from the debounce timer with store reads.
			var mu sync.Mutex
			deb := layout.NewDebouncer(layout.ResizeDebounce, func(cells int) {
				mu.Lock()
				defer mu.Unlock()
				app.logger.Debug("resize settled", zap.Int("cells", cells))
				fmt.Fprintln(out)
				printColumns(out, s.Folders(), cells, cfg)
			})
			defer deb.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchResize(ctx, func() { deb.Notify(terminalWidth()) })
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Terminal width in cells (default: current terminal)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Recompute on terminal resize until interrupted")
	return cmd
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

func printColumns(w io.Writer, h model.Hierarchy, cells int, cfg layout.ColumnConfig) {
	columns := layout.Compute(h, layout.TerminalUnits(cells, cfg), cfg, nil)
	fmt.Fprintf(w, "%d cells: %d columns\n", cells, len(columns))
	for i, col := range columns {
		titles := make([]string, len(col.Cards))
		for j, card := range col.Cards {
			titles[j] = card.Title
		}
		fmt.Fprintf(w, "  %d: %s\n", i+1, strings.Join(titles, ", "))
	}
}

// watchResize calls onResize for every terminal resize until ctx is done.
func watchResize(ctx context.Context, onResize func()) error {
	sig := make(chan os.Signal, 1)
	if !notifyResize(sig) {
		return fmt.Errorf("resize notifications are not supported on this platform")
	}
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			onResize()
		}
	}
}
