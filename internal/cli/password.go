package cli

import (
	"fmt"

	"github.com/msomdec/kennel/internal/service"
	"github.com/spf13/cobra"
)

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for admin_password_hash",
		Example: `  kennel hash-password 'correct horse battery staple'
  KENNEL_BCRYPT_COST=10 kennel hash-password s3cret-pass`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			hash, err := service.HashPassword(args[0], cfg.BcryptCost)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
