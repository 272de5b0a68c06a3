package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notifykit/templatecache"
)

// newFetchCmd creates the `fetch` command.
// Usage: templatecache fetch emails/welcome.pug --commit abc123
func newFetchCmd(flags *rootFlags) *cobra.Command {
	var commit string
	var pending bool

	cmd := &cobra.Command{
		Use:   "fetch <template-path>",
		Short: "Fetch template content pinned to a commit",
		Long: `Fetches the content of a template file as it existed at the given commit.
Without --commit the latest default-branch commit is used, subject to the
fallback policy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(flags)
			if err != nil {
				return err
			}

			content, err := client.TemplateContent(cmd.Context(), templatecache.ContentRequest{
				TemplatePath: args[0],
				CommitSHA:    commit,
				PendingSend:  pending,
			})
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				encoded, err := json.Marshal(struct {
					Repository string `json:"repository"`
					Path       string `json:"path"`
					Commit     string `json:"commit,omitempty"`
					Content    string `json:"content"`
				}{
					Repository: client.Repository().FullName(),
					Path:       args[0],
					Commit:     commit,
					Content:    content,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "commit SHA to pin the fetch to")
	cmd.Flags().BoolVar(&pending, "pending", false, "treat the request as a pending send for the fallback policy")

	return cmd
}
