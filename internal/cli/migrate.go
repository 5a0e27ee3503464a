package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/config"
	"github.com/mcoot/courtside/internal/storage/sqldb"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the credential store schema",
		Long:  "Opens DATABASE_URL, applies pending migrations and reports the number of registered users.",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := NewLogger(appCfg, cmd.ErrOrStderr())
			db, err := sqldb.Open(cmd.Context(), appCfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			users, err := db.CountUsers(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(MigrateResult{
				Database: redactURL(appCfg.DatabaseURL),
				Dialect:  string(db.Dialect()),
				Users:    users,
			})
			return nil
		},
	}
}

// redactURL hides any password embedded in a database URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
