package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/pestops-backend/internal/app"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := os.Getenv("LOG_MODE")
			if mode == "" {
				mode = "development"
			}
			log, err := logger.New(mode)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()
			return app.Migrate(cmd.Context(), log)
		},
	}
}
