package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatctl",
		Short:         "Operator tooling for the chat server",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	root.SetOut(os.Stdout)
	root.AddCommand(hashCmd(), journalCmd())
	return root
}
