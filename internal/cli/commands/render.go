package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/fluentql/internal/cli/config"
	"github.com/leapstack-labs/fluentql/internal/script"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <script>...",
		Short: "Render SQL from query scripts",
		Long: `Execute one or more Starlark query scripts and print the SQL
statements they emit.

Scripts run concurrently; output is printed in argument order, each
statement preceded by a comment line carrying its emit name.`,
		Example: `  # Render a script
  fluentql render queries.star

  # Render for a specific dialect
  fluentql render queries.star --dialect postgres

  # Re-render whenever a script changes
  fluentql render queries.star --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			cfg := config.GetCurrentConfig()

			if err := renderScripts(cmd, cfg, args); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchScripts(cmd, cfg, args)
		},
	}

	cmd.Flags().Bool("watch", false, "Re-render when a script file changes")

	return cmd
}

// renderScripts executes every script concurrently and prints the emitted
// statements in argument order.
func renderScripts(cmd *cobra.Command, cfg *config.Config, files []string) error {
	results := make([][]script.Rendered, len(files))

	eg, _ := errgroup.WithContext(cmd.Context())
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			ctx := script.NewContext(cfg.Dialect, cfg.DialectOptions()...)
			if err := ctx.RunFile(file); err != nil {
				return err
			}
			results[i] = ctx.Results()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, rendered := range results {
		for _, r := range rendered {
			_, _ = fmt.Fprintf(w, "-- %s\n%s\n", r.Name, r.SQL)
		}
	}
	return nil
}

// watchScripts re-renders whenever one of the script files changes. It
// returns when the command context is cancelled.
func watchScripts(cmd *cobra.Command, cfg *config.Config, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories so editors that replace files on save are
	// still picked up.
	watched := make(map[string]bool)
	byPath := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		byPath[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes. Press Ctrl+C to stop.")

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !byPath[abs] {
				continue
			}
			if err := renderScripts(cmd, cfg, files); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watch error: %v\n", err)
		}
	}
}
