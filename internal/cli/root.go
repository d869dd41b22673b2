// Package cli implements sitectl, the operator tool for the site backend:
// seeding the catalogue, signing test webhooks, minting admin tokens and
// submitting the contact form from a shell.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operator tool for the touring site backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetOut(out)

	root.AddCommand(
		newSeedCmd(),
		newSignWebhookCmd(),
		newAdminTokenCmd(),
		newSubmitCmd(),
	)
	return root
}
