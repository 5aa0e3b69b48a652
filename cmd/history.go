package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/bilimpath/bilim/internal/config"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exam attempts",
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

		attempts, err := st.AttemptRepo().Recent(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		for _, a := range attempts {
			fmt.Printf("%s  %-7s  %3d%%  %d/%d  %s\n",
				a.TakenAt.Local().Format("2006-01-02 15:04"),
				a.Flow,
				int(math.Round(a.Score)),
				a.CorrectCount,
				a.TotalQuestions,
				a.Title,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of attempts to list")
}
