package main

import (
	"fmt"

	"github.com/phrazzld/flashcards-api/internal/service/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// newHashPasswordCmd prints bcrypt hashes for the given passwords, for
// seeding users directly in the database.
func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password PASSWORD...",
		Short: "Print bcrypt hashes for the given passwords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher := auth.NewBcryptHasher(cost)
			for _, password := range args {
				hash, err := hasher.Hash(password)
				if err != nil {
					return fmt.Errorf("failed to hash password: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}
