// Package main is the entry point for the diff2html CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tdryer/diff2html-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
