package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RichMorin/dtags/internal/discover"
	"github.com/RichMorin/dtags/internal/types"
	"github.com/RichMorin/dtags/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Re-run the consistency check when documents change",
	Long: `Run the consistency check, then keep watching the scan paths and re-run
it whenever a document changes. Rapid bursts of writes are debounced into a
single pass. Interrupt with Ctrl-C.

Examples:
  dtags watch
  dtags watch '^install_'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	sel, err := buildSelector(args)
	if err != nil {
		return err
	}
	sel.ConsistencyOnly = true

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runPass := func() {
		pass(ctx, s, sel)
	}
	runPass()

	fw, err := watcher.New(time.Duration(s.cfg.Watch.DebounceMillis)*time.Millisecond, s.log)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.ExtFilter(s.cfg.FileTypes))
	fw.AddHandler(func(paths []string) error {
		s.log.Info(ctx, "documents changed", "files", len(paths))
		runPass()
		return nil
	})
	for _, root := range s.cfg.ScanPaths {
		if err := fw.AddRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	fw.Start(ctx)
	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl-C to stop.")
	<-ctx.Done()
	return nil
}

// pass runs one consistency check over a fresh table; watch mode never reuses
// an index across passes, and re-discovers the document set so new files are
// picked up.
func pass(ctx context.Context, s *session, sel *types.Selector) {
	files, err := discover.Files(s.cfg.ScanPaths, s.cfg.FileTypes, s.cfg.ExcludeDirs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dtags:", err)
		return
	}
	table, errs := s.engine.BuildTable(ctx, files, sel)
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, "dtags:", err)
	}
	defs := table.DefinitionsMatching(sel)
	if len(defs) == 0 {
		fmt.Println("All tags consistent.")
		return
	}
	if err := renderDefs("table", defs, false); err != nil {
		fmt.Fprintln(os.Stderr, "dtags:", err)
	}
}
