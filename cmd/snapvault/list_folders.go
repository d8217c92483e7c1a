package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuemby/snapvault/pkg/logging"
)

var listFoldersCmd = &cobra.Command{
	Use:   "list-folders",
	Short: "List the folders backed up for a computer",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.WithOperation("cli", "list-folders")

		computerID, _ := cmd.Flags().GetString("computer")
		if computerID == "" {
			return fmt.Errorf("--computer is required")
		}

		repo, err := openRepository(cmd)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open repository")
			return err
		}

		computer, err := repo.GetComputer(cmd.Context(), computerID)
		if err != nil {
			logger.Error().Err(err).Str("computer", computerID).Msg("failed to fetch computer")
			return err
		}

		folders, err := computer.ListFolders(cmd.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to list folders")
			return err
		}

		if len(folders) == 0 {
			fmt.Println("No folders found")
			return nil
		}

		fmt.Printf("%-38s %-24s %s\n", "ID", "NAME", "LOCAL PATH")
		for _, f := range folders {
			fmt.Printf("%-38s %-24s %s\n", strings.ToUpper(f.ID.String()), truncate(f.Name, 24), f.LocalPath)
		}
		return nil
	},
}

func init() {
	listFoldersCmd.Flags().String("computer", "", "computer UUID (required)")
}
