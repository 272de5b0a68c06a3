package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newLatestCmd creates the `latest` command.
// Usage: templatecache latest
func newLatestCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Resolve the latest commit SHA of the default branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(flags)
			if err != nil {
				return err
			}

			sha, err := client.LatestCommit(cmd.Context())
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				encoded, err := json.Marshal(struct {
					Repository string `json:"repository"`
					SHA        string `json:"sha"`
				}{
					Repository: client.Repository().FullName(),
					SHA:        sha,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), sha)
			return nil
		},
	}
}
