package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dfm/internal/cli"
	"github.com/arthur-debert/dfm/internal/version"
)

// generate writes the dfm(1) man page to w
func generate(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "DFM",
		Section: "1",
		Source:  "dfm " + version.Version,
		Manual:  "dfm manual",
	}
	return doc.GenMan(cli.NewRootCmd(), header, w)
}

func main() {
	if err := generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
