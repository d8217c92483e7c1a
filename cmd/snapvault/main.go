package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/snapvault/pkg/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snapvault",
	Short: "Read and restore files from an Arq-format backup repository",
	Long: `snapvault reads a pre-existing, content-addressed, encrypted,
deduplicated backup repository in object storage: list the computers
and folders it holds, and list the files recorded in a folder's latest
commit.`,
}

func init() {
	rootCmd.PersistentFlags().StringP("config-file", "c", "", "path to the repository connection config (TOML)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("password", "", "repository passphrase (or set SNAPVAULT_PASSWORD)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().String("cache-dir", "", "if set, cache fetched pack and index bodies under this directory")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(listComputersCmd)
	rootCmd.AddCommand(listFoldersCmd)
	rootCmd.AddCommand(listFilesCmd)
}

func initLogging() {
	verbosity, _ := rootCmd.PersistentFlags().GetCount("verbose")
	logging.Init(logging.Config{Level: logging.LevelForVerbosity(verbosity)})
}
