package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prdgen",
		Short: "prdgen - consult the AI advisory panel from the command line",
		Long: `prdgen sends a product idea to the advisory panel, one concurrent call per
selected advisor, and writes the resulting Product Requirements Document and
development prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newGenerateCmd(), newAdvisorsCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(v string) {
	rootCmd.Version = v
}

// fail prints a colored error with an optional hint and returns a plain error
// for cobra.
func fail(cmd *cobra.Command, title string, err error, hint string) error {
	red.Fprintf(cmd.ErrOrStderr(), "%s\n", title)
	fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
	if hint != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%s\n", hint)
	}
	return fmt.Errorf("%s: %w", title, err)
}
