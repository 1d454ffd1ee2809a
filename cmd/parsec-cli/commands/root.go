package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"parsecquery/lib/configutil"
	"parsecquery/lib/parsec"
	"parsecquery/lib/serviceutil"
	"parsecquery/lib/telemetry"

	"github.com/spf13/cobra"
)

// Config carries optional defaults for the service location, read from
// config.json5 next to the working directory. Flags win over the file.
type Config struct {
	Version string `json:"version"`
	Website string `json:"website"`
}

var (
	flagVersion   string
	flagWebsite   string
	flagFormData  string
	flagDebugHttp string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "parsec-cli",
	Short: "parsec-cli queries the Padova CMD isochrone service.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVersion, "cmd-version", "", `cmd version path segment, e.g. "cmd_3.7" (default "cmd")`)
	rootCmd.PersistentFlags().StringVar(&flagWebsite, "website", "", "CGI root of the service")
	rootCmd.PersistentFlags().StringVar(&flagFormData, "form-data", "", "path to a captured form block replacing live form introspection")
	rootCmd.PersistentFlags().StringVar(&flagDebugHttp, "debug-http", "", "directory to dump HTTP transcripts into")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createClient(ctx context.Context) *parsec.Client {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	version := cfg.Version
	if flagVersion != "" {
		version = flagVersion
	}
	website := cfg.Website
	if flagWebsite != "" {
		website = flagWebsite
	}

	if flagDebugHttp != "" {
		output, err := telemetry.NewFilesystemOutput(flagDebugHttp)
		if err != nil {
			serviceutil.Fatal("failed to create http transcript directory", err)
		}
		parsec.SetRestyInstrumentOutput(output)
	}

	client, err := parsec.NewClient(ctx, parsec.ClientOptions{
		Version: version,
		Website: website,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize cmd client", err)
	}

	if flagFormData != "" {
		contents, err := os.ReadFile(flagFormData)
		if err != nil {
			serviceutil.Fatal("failed to read form data file", err)
		}
		err = client.SetFormData(string(contents))
		if err != nil {
			serviceutil.Fatal("failed to parse form data file", err)
		}
	}

	return client
}
