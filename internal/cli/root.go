package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/errors"
	ghcli "github.com/notifykit/templatecache/providers/cli"
	"github.com/notifykit/templatecache/providers/rest"
	"github.com/notifykit/templatecache/providers/sdk"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootFlags collects the persistent flags shared by every subcommand.
type rootFlags struct {
	configFile string
	repository string
	token      string
	basePath   string
	branch     string
	provider   string
	jsonOutput bool
	verbose    bool
}

// NewRootCmd creates the top-level `templatecache` command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "templatecache",
		Short: "Fetch commit-pinned template content from GitHub",
		Long: `templatecache fetches notification template files from a GitHub
repository, pinned to a specific commit so previews always show the template
exactly as it was when the notification was sent.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", DefaultConfigFile, "path to a TOML config file")
	pf.StringVar(&flags.repository, "repository", "", "repository reference (URL, SSH, or owner/name)")
	pf.StringVar(&flags.token, "token", "", "GitHub token (overrides config and environment)")
	pf.StringVar(&flags.basePath, "base-path", "", "path prefix applied to every template path")
	pf.StringVar(&flags.branch, "branch", "", "branch for latest-commit lookups")
	pf.StringVar(&flags.provider, "provider", "", "transport provider: rest, sdk, or cli")
	pf.BoolVar(&flags.jsonOutput, "json", false, "emit results and errors as JSON")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log fetch activity to stderr")

	root.AddCommand(newFetchCmd(flags))
	root.AddCommand(newLatestCmd(flags))

	return root
}

// Execute runs the root command.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		reportError(root, err)
		os.Exit(1)
	}
}

// reportError prints err to stderr, as JSON when --json was given.
func reportError(cmd *cobra.Command, err error) {
	jsonOutput, _ := cmd.PersistentFlags().GetBool("json")
	if jsonOutput {
		if encoded, marshalErr := json.Marshal(errors.ToJSON(err)); marshalErr == nil {
			fmt.Fprintln(os.Stderr, string(encoded))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", errors.GetMessage(err))
}

// newClient builds a Client from the effective configuration.
func newClient(flags *rootFlags) (*templatecache.Client, error) {
	explicit := flags.configFile != DefaultConfigFile
	cfg, providerName, err := loadConfig(flags.configFile, explicit, flags)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(providerName, cfg)
	if err != nil {
		return nil, err
	}

	opts := []templatecache.ClientOption{}
	if flags.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, templatecache.WithLogger(logger))
	}

	return templatecache.NewClient(provider, cfg, opts...)
}

// newProvider constructs the transport named by providerName.
func newProvider(providerName string, cfg templatecache.Config) (templatecache.ContentProvider, error) {
	switch providerName {
	case "rest":
		return rest.New(rest.WithToken(cfg.Token), rest.WithBaseURL(cfg.APIBaseURL))
	case "sdk":
		return sdk.New(sdk.WithToken(cfg.Token))
	case "cli":
		return ghcli.New()
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"unknown provider %q: expected rest, sdk, or cli", providerName)
	}
}
