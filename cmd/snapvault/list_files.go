package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/snapvault/pkg/logging"
	"github.com/cuemby/snapvault/pkg/walk"
)

var listFilesCmd = &cobra.Command{
	Use:   "list-files",
	Short: "List files recorded in a folder's latest commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.WithOperation("cli", "list-files")

		computerID, _ := cmd.Flags().GetString("computer")
		folderID, _ := cmd.Flags().GetString("folder")
		pattern, _ := cmd.Flags().GetString("path")
		if computerID == "" || folderID == "" {
			return fmt.Errorf("--computer and --folder are required")
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

		folder, err := computer.GetFolder(cmd.Context(), folderID)
		if err != nil {
			logger.Error().Err(err).Str("folder", folderID).Msg("failed to fetch folder")
			return err
		}

		commit, err := folder.GetLatestCommit(cmd.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to fetch latest commit")
			return err
		}

		walker := walk.New(folder.TreePackset, folder.Decrypter())
		files, err := walker.ListFiles(cmd.Context(), commit, pattern)
		if err != nil {
			logger.Error().Err(err).Msg("failed to walk commit tree")
			return err
		}

		if len(files) == 0 {
			fmt.Println("No files matched")
			return nil
		}

		fmt.Printf("%-12s %s\n", "SIZE", "PATH")
		for _, f := range files {
			fmt.Printf("%-12d %s\n", f.Size, f.Path)
		}
		return nil
	},
}

func init() {
	listFilesCmd.Flags().String("computer", "", "computer UUID (required)")
	listFilesCmd.Flags().String("folder", "", "folder UUID (required)")
	listFilesCmd.Flags().String("path", "", "glob pattern to filter file paths (optional)")
}
