package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dfm/internal/cli"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	err := rootCmd.Execute()
	_ = logging.CloseLogFile()
	if err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
