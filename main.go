package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd(&app{})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errRefused) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
