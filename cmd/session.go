package cmd

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/RichMorin/dtags/internal/config"
	"github.com/RichMorin/dtags/internal/discover"
	"github.com/RichMorin/dtags/internal/logging"
	"github.com/RichMorin/dtags/internal/query"
	"github.com/RichMorin/dtags/internal/types"
)

// session bundles everything a command needs for one invocation: loaded
// configuration, the logger, the query engine, and the name-sorted document
// set. Nothing here outlives the command.
type session struct {
	cfg    *config.Config
	log    logging.Logger
	engine *query.Engine
	files  []string
}

func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	files, err := discover.Files(cfg.ScanPaths, cfg.FileTypes, cfg.ExcludeDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}

	return &session{
		cfg:    cfg,
		log:    log,
		engine: query.New(log),
		files:  files,
	}, nil
}

// buildSelector compiles an optional name-pattern argument into a selector.
// A malformed pattern is propagated, not retried.
func buildSelector(args []string) (*types.Selector, error) {
	sel := &types.Selector{}
	if len(args) > 0 && args[0] != "" {
		pattern, err := regexp.Compile(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid tag pattern %q: %w", args[0], err)
		}
		sel.Pattern = pattern
	}
	return sel, nil
}

// parseTopic splits a topic argument into its file and optional line number.
// Accepted forms are "file" and "file:line".
func parseTopic(arg string) (file string, line int, err error) {
	if idx := strings.LastIndex(arg, ":"); idx > 0 {
		if n, convErr := strconv.Atoi(arg[idx+1:]); convErr == nil {
			if n <= 0 {
				return "", 0, fmt.Errorf("topic line must be positive, got %d", n)
			}
			return arg[:idx], n, nil
		}
	}
	return arg, 0, nil
}

// reportErrors prints every collected error to stderr and returns a summary
// error so the command exits non-zero. Normal output is suppressed by the
// caller when this fires.
func reportErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, "dtags:", err)
	}
	return fmt.Errorf("%d error(s)", len(errs))
}
