package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/fluentql/internal/cli/config"
	"github.com/leapstack-labs/fluentql/internal/script"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive query builder session",
		Long: `Start an interactive session for building queries.

Expressions that evaluate to a query are compiled and printed as SQL;
other expressions print their value. Statements such as assignments
persist across lines.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	cfg := config.GetCurrentConfig()
	sctx := script.NewContext(cfg.Dialect, cfg.DialectOptions()...)

	// The environment persists across lines; executed statements merge
	// their globals back in.
	env := starlark.StringDict{}
	for name, value := range sctx.Globals() {
		env[name] = value
	}

	thread := sctx.NewThread("repl")
	thread.Print = func(_ *starlark.Thread, msg string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".fluentql_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fluentql> ",
		HistoryFile:     historyFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fluentql REPL (dialect: %s)\n", sctx.Dialect())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handleReplCommand(cmd, line) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		if err := evalReplLine(cmd, thread, env, cfg, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// evalReplLine evaluates a single input line. Expression results are
// printed; query results are compiled first. Anything that does not parse
// as an expression is executed as a statement and its globals merged into
// the environment.
func evalReplLine(cmd *cobra.Command, thread *starlark.Thread, env starlark.StringDict, cfg *config.Config, line string) error {
	if _, err := syntax.ParseExpr("<repl>", line, 0); err != nil {
		globals, err := starlark.ExecFile(thread, "<repl>", line, env)
		if err != nil {
			return replError(err)
		}
		for name, value := range globals {
			env[name] = value
		}
		return nil
	}

	value, err := starlark.Eval(thread, "<repl>", line, env)
	if err != nil {
		return replError(err)
	}

	switch v := value.(type) {
	case *script.Query:
		sql, err := dialect.Compile(cfg.Dialect, v.Unwrap(), cfg.DialectOptions()...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
	case starlark.NoneType:
		// Nothing to print.
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}
	return nil
}

// replError strips the backtrace from evaluation errors; a single input
// line has no useful stack.
func replError(err error) error {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return errors.New(evalErr.Msg)
	}
	return err
}

func handleReplCommand(cmd *cobra.Command, line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())
		return true

	case ".dialects":
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(dialect.List(), " "))
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
		return true
	}
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .dialects       List available SQL dialects
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - ql.table, ql.select and ql.delete build queries
  - An expression evaluating to a query prints its compiled SQL
  - Assignments persist: t = ql.table("orders")
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter creates a readline completer for the builder API and
// dot-commands.
func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("ql.table("),
		readline.PcItem("ql.select("),
		readline.PcItem("ql.delete("),
		readline.PcItem("ql.emit("),
		readline.PcItem("ql.dialects("),
		readline.PcItem(".help"),
		readline.PcItem(".dialects"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
