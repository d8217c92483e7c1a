package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/snapvault/pkg/logging"
)

var listComputersCmd = &cobra.Command{
	Use:   "list-computers",
	Short: "List the computers this repository holds backups for",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.WithOperation("cli", "list-computers")

		repo, err := openRepository(cmd)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open repository")
			return err
		}

		computers, err := repo.ListComputers(cmd.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to list computers")
			return err
		}

		if len(computers) == 0 {
			fmt.Println("No computers found")
			return nil
		}

		fmt.Printf("%-38s %-20s %s\n", "ID", "COMPUTER", "USER")
		for _, c := range computers {
			fmt.Printf("%-38s %-20s %s\n", c.ID, truncate(c.Computer, 20), c.User)
		}
		return nil
	},
}
