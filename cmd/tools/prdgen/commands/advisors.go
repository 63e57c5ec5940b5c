package commands

import (
	"fmt"

	"prd-advisors/pkg/registry"

	"github.com/spf13/cobra"
)

func newAdvisorsCmd() *cobra.Command {
	var registryPath string

	cmd := &cobra.Command{
		Use:   "advisors",
		Short: "List the advisory panel in canonical order",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.FromFile(registryPath)
			if err != nil {
				return fail(cmd, "Advisor registry is invalid", err, "Check the file with: registry-updater validate -path "+registryPath)
			}
			out := cmd.OutOrStdout()
			for _, a := range reg.Advisors() {
				cyan.Fprintf(out, "%-8s", a.Key)
				fmt.Fprintf(out, " %s %s - %s\n", a.Emoji, a.DisplayName, a.Expertise)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryPath, "registry", "", "Advisor registry file (built-in panel when empty)")
	return cmd
}
