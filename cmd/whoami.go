package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilimpath/bilim/internal/config"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
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

		sess, err := st.SessionRepo().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if !sess.Valid() {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("Signed in as a %s (%s token).\n", sess.Role, sess.TokenType)
		return nil
	},
}
