package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/app"
	"github.com/bilimpath/bilim/internal/config"
)

// runApp resolves configuration, opens the store, restores any persisted
// session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.FromCmd(cmd)
	if err != nil {
		return err
	}

	log, logFile, err := cfg.Logger()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sessions := st.SessionRepo()
	cur, err := sessions.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	opts := app.Options{
		API:      api.New(cfg.APIBaseURL, cfg.Timeout, log),
		Sessions: sessions,
		Attempts: st.AttemptRepo(),
		Session:  &cur,
		Log:      log,
	}

	return app.Run(opts)
}
