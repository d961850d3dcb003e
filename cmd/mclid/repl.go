package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"mcli"
	"mcli/internal/device"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive console in this terminal",
	Long: `Run the console against this terminal with line editing and history.
Line editing is the terminal's own, not the engine's, so arrow keys and
Ctrl-R work. Type 'exit' or press Ctrl-D to leave.`,
	Run: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) {
	out := writerPort{w: os.Stdout}
	dev := device.New(out)
	eng := mcli.New(out, dev, device.Commands())

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "mcli> ",
		HistoryFile:  historyPath(),
		HistoryLimit: 500,
	})
	handleError(err, "line editor error")
	defer rl.Close()

	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl-D.
			return
		}

		parsed := mcli.ParseLine(line)
		if parsed.Count() == 0 {
			continue
		}
		if parsed.Arg(0) == "exit" {
			return
		}
		if !eng.ExecuteCommand(line) {
			fmt.Printf("Command \"%s\" not found. Type 'help' for available commands.\n", parsed.Arg(0))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mclid_history")
}
