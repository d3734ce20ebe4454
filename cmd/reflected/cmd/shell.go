package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tuannm99/reflected/internal/random"
	"github.com/tuannm99/reflected/internal/schemadef"
	"github.com/tuannm99/reflected/internal/shell"
	"github.com/tuannm99/reflected/internal/store"
)

func newShellCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "shell <schema.yaml>",
		Short: "Edit records of a described type interactively",
		Long: `Open an interactive session over one record of the described type.
Type help inside the shell for the command list.

Example:
  reflected shell user.yaml --store ./data`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}

			st, err := store.Open(storeDir(cmd), m.Schema)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			histPath, _ := cmd.Flags().GetString("history")
			histMax, _ := cmd.Flags().GetInt("history-max")
			h := shell.NewHistory(histPath)
			_ = h.Load(histMax)

			sess := shell.NewSession(m, cmd.OutOrStdout(),
				shell.WithStore(st),
				shell.WithHistory(h),
				shell.WithGenerator(random.New(random.WithConfig(cfg.GeneratorConfig()))),
			)

			if f, ok := cmd.InOrStdin().(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
				return readlineLoop(cmd, m, sess, h)
			}
			return scanLoop(cmd.InOrStdin(), cmd.OutOrStdout(), sess, h)
		},
	}
	c.Flags().String("store", "", "store directory (defaults to store.dir)")
	c.Flags().String("history", shell.DefaultHistoryPath(), "history file path")
	c.Flags().Int("history-max", 2000, "max history lines loaded into memory")
	return c
}

func readlineLoop(cmd *cobra.Command, m *schemadef.Model, sess *shell.Session, h *shell.History) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sess.Prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(m),
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline so up-arrow works immediately
	for _, line := range h.Lines() {
		_ = rl.SaveHistory(line)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s shell, type help for help\n", m.Schema.TypeName())
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// EOF
			fmt.Fprintln(out)
			return nil
		}

		_ = h.Append(line)
		if err := sess.Exec(line); err != nil {
			if errors.Is(err, shell.ErrQuit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// scanLoop serves piped input: no prompt, one command per line.
func scanLoop(in io.Reader, out io.Writer, sess *shell.Session, h *shell.History) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		_ = h.Append(line)
		if err := sess.Exec(line); err != nil {
			if errors.Is(err, shell.ErrQuit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

func completer(m *schemadef.Model) *readline.PrefixCompleter {
	fieldItems := func() []readline.PrefixCompleterInterface {
		var items []readline.PrefixCompleterInterface
		for _, f := range m.Schema.Fields() {
			items = append(items, readline.PcItem(f.Name))
		}
		return items
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("fields"),
		readline.PcItem("show"),
		readline.PcItem("get", fieldItems()...),
		readline.PcItem("set", fieldItems()...),
		readline.PcItem("unset", fieldItems()...),
		readline.PcItem("new"),
		readline.PcItem("random"),
		readline.PcItem("save"),
		readline.PcItem("load"),
		readline.PcItem("history"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
