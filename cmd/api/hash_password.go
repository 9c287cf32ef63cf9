package main

import (
	"github.com/spf13/cobra"

	"go-cv-backend/pkg/security"
)

// newHashPasswordCommand prints a bcrypt hash for seeding admin accounts.
func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plain>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := security.HashPassword(args[0])
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}
}
