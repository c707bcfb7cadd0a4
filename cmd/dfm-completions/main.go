package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dfm/internal/cli"
)

var generators = map[string]func(*cobra.Command, io.Writer) error{
	"bash": func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
	"zsh":  func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
	"fish": func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": func(c *cobra.Command, w io.Writer) error {
		return c.GenPowerShellCompletionWithDesc(w)
	},
}

func shells() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generate writes the completion script of shell to w
func generate(shell string, w io.Writer) error {
	gen, ok := generators[shell]
	if !ok {
		return fmt.Errorf("unknown shell: %s (supported: %s)", shell, strings.Join(shells(), ", "))
	}
	if err := gen(cli.NewRootCmd(), w); err != nil {
		return fmt.Errorf("error generating %s completion: %w", shell, err)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%s>\n", os.Args[0], strings.Join(shells(), "|"))
		os.Exit(1)
	}

	if err := generate(os.Args[1], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
