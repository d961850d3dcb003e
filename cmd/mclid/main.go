// mclid hosts the mcli command engine on a host machine: behind a TCP
// listener for remote consoles, as a local REPL, or for one-shot
// command execution.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
