package cli

import (
	"context"
	"fmt"

	"github.com/msomdec/kennel/internal/service"
	"github.com/spf13/cobra"
)

func newTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create, drop or reset the dogs table",
	}

	cmd.AddCommand(newTableActionCommand("create", "Create the dogs table if it does not exist",
		"dogs table created", (*service.DogService).CreateTable))
	cmd.AddCommand(newTableActionCommand("drop", "Drop the dogs table if it exists",
		"dogs table dropped", (*service.DogService).DropTable))
	cmd.AddCommand(newTableActionCommand("reset", "Drop and recreate the dogs table, removing every row",
		"dogs table reset", (*service.DogService).ResetTable))

	return cmd
}

func newTableActionCommand(use, short, done string, action func(*service.DogService, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := action(dogs, cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		},
	}
}
