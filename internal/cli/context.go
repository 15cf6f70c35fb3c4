package cli

import (
	"fmt"
	"log/slog"

	"github.com/msomdec/kennel/internal/repository"
	"github.com/msomdec/kennel/internal/service"
	"github.com/spf13/cobra"
)

// openDogService opens the configured database for a single command. The
// returned cleanup closes it.
func openDogService(cmd *cobra.Command) (*service.DogService, func(), error) {
	cfg := getConfig(cmd.Context())

	db, err := repository.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Warn("close database", "error", err)
		}
	}
	return service.NewDogService(db.Dogs()), cleanup, nil
}
