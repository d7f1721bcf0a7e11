package commands

import (
	"chat-server/auth"
	"fmt"

	"github.com/spf13/cobra"
)

// hashCmd prints a credential line whose password is stored as an argon2id hash.
func hashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <username> <password>",
		Short: "Print a users file entry with a hashed password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := auth.CredentialLine(auth.CredentialRequest{Username: args[0], Password: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	return cmd
}
