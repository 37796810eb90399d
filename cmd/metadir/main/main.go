package main

import (
	"os"

	"github.com/arthur-debert/metadir/cmd/metadir"
)

func main() {
	os.Exit(metadir.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
