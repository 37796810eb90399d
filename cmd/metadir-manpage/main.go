package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/metadir/cmd/metadir"
	"github.com/arthur-debert/metadir/internal/version"
)

func main() {
	rootCmd := metadir.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "METADIR",
		Section: "1",
		Source:  "metadir " + version.Version,
		Manual:  "metadir manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
