package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/barrel/cmd/barrel"
	"github.com/arthur-debert/barrel/internal/version"
)

func main() {
	rootCmd := barrel.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BARREL",
		Section: "1",
		Source:  "barrel " + version.Version,
		Manual:  "barrel manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
