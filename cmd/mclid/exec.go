package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mcli"
	"mcli/internal/device"
)

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Run one command and exit",
	Long: `Run one command against the stock command table, print its output,
and exit. Exits with status 1 when the command is not found.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runExec,
}

func runExec(cmd *cobra.Command, args []string) {
	out := writerPort{w: os.Stdout}
	dev := device.New(out)
	eng := mcli.New(out, dev, device.Commands())

	line := strings.Join(args, " ")
	if !eng.ExecuteCommand(line) {
		fmt.Fprintf(os.Stderr, "mclid: command %q not found\n", mcli.ParseLine(line).Arg(0))
		os.Exit(1)
	}
}
