package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all study progress",
	Long: `Replace the profile with a fresh one: sets, mastery, streak, and
settings all go back to their initial state. The event history is
append-only and is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("this wipes all sets and progress; re-run with --force to confirm")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		fresh := profile.NewProfile()
		fresh.AddSet(profile.StarterSet())
		svc := profile.NewService(st.ProfileRepo(), fresh)
		if err := svc.Save(cmd.Context()); err != nil {
			return fmt.Errorf("save fresh profile: %w", err)
		}

		fmt.Println("Profile reset. The starter set is back.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Confirm the reset")
}
