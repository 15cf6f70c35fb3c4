package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/msomdec/kennel/internal/domain"
	"github.com/msomdec/kennel/internal/service"
	"github.com/spf13/cobra"
)

func newDogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dogs",
		Short: "Add, list, find and update dogs",
		Long: `Work with rows of the dogs table. The table must exist first
(see "kennel table create").`,
	}

	cmd.AddCommand(newDogsAddCommand())
	cmd.AddCommand(newDogsListCommand())
	cmd.AddCommand(newDogsFindCommand())
	cmd.AddCommand(newDogsFindOrCreateCommand())
	cmd.AddCommand(newDogsUpdateCommand())

	return cmd
}

func newDogsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <breed>",
		Short:   "Insert a new dog",
		Example: `  kennel dogs add Rex Lab`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dog, err := dogs.Create(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderDog(cmd.OutOrStdout(), getConfig(cmd.Context()).Output, dog)
		},
	}
}

func newDogsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every dog in insertion order",
		Example: `  kennel dogs list
  kennel dogs list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := dogs.List(cmd.Context())
			if err != nil {
				return err
			}
			return renderDogs(cmd.OutOrStdout(), getConfig(cmd.Context()).Output, all)
		},
	}
}

func newDogsFindCommand() *cobra.Command {
	var (
		id   int64
		name string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find one dog by id or by exact name",
		Long: `Find one dog by id or by exact name. When several dogs share a name the
earliest inserted one is returned.`,
		Example: `  kennel dogs find --id 1
  kennel dogs find --name Rex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			byID := cmd.Flags().Changed("id")
			byName := cmd.Flags().Changed("name")
			if byID == byName {
				return errors.New("exactly one of --id or --name is required")
			}

			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var dog *domain.Dog
			if byID {
				dog, err = dogs.FindByID(cmd.Context(), id)
			} else {
				dog, err = dogs.FindByName(cmd.Context(), name)
			}
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("no matching dog")
			}
			if err != nil {
				return err
			}
			return renderDog(cmd.OutOrStdout(), getConfig(cmd.Context()).Output, dog)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Dog id")
	cmd.Flags().StringVar(&name, "name", "", "Exact dog name")
	return cmd
}

func newDogsFindOrCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-or-create <name> <breed>",
		Short: "Return the dog with this name and breed, inserting it if absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dog, err := dogs.FindOrCreate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderDog(cmd.OutOrStdout(), getConfig(cmd.Context()).Output, dog)
		},
	}
}

func newDogsUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite a dog's name and/or breed",
		Example: `  kennel dogs update 1 --breed Labrador
  kennel dogs update 1 --name Max --breed Beagle`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dog id %q", args[0])
			}

			var patch service.DogPatch
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				patch.Name = &name
			}
			if cmd.Flags().Changed("breed") {
				breed, _ := cmd.Flags().GetString("breed")
				patch.Breed = &breed
			}
			if patch.Name == nil && patch.Breed == nil {
				return errors.New("at least one of --name or --breed is required")
			}

			dogs, cleanup, err := openDogService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dog, err := dogs.Update(cmd.Context(), id, patch)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no dog with id %d", id)
			}
			if err != nil {
				return err
			}
			return renderDog(cmd.OutOrStdout(), getConfig(cmd.Context()).Output, dog)
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("breed", "", "New breed")
	return cmd
}
