package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilimpath/bilim/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromCmd(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.SessionRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
