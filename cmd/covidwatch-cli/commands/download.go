package commands

import (
	"fmt"

	"covidwatch-backend/lib/fetch"
	"covidwatch-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var downloadOut *string

func init() {
	downloadOut = downloadCmd.Flags().String("out", ".", "The directory to download into.")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <url> [--out <dir>]",
	Short: "Downloads a dataset file, the filename derives from the url.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		client, err := fetch.NewClient(fetch.ClientOptions{
			UserAgent:        cfg.Source.UserAgent,
			CloudflareBypass: cfg.Source.CloudflareBypass,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize http client", err)
		}

		path, err := client.Download(cmd.Context(), args[0], *downloadOut, "")
		if err != nil {
			serviceutil.Fatal("failed to download", err)
		}
		fmt.Println(path)
	},
}
