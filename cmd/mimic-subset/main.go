package main

import (
	"context"
	"fmt"
	"os"

	"github.com/medlearn/mimic-subset/logging"
)

func main() {
	logging.Initialize()

	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %s\n", err)
		os.Exit(1)
	}
}
