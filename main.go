// Command prove is an interactive natural deduction prover for propositional logic.
//
// Sequents are read from a file, one per line, and proved one after the other by
// typing rule requests. When the standard input is not a terminal, requests are read
// line by line and the proof is printed after each of them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "prove: %v\n", err)
		return 1
	}
	return 0
}
