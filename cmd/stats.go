package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc, closeStore, err := openProfile(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		p := profileSvc.Profile()
		if len(p.Sets) == 0 {
			fmt.Println("No sets yet. Run 'flashdown generate --topic ...' to create one.")
			return nil
		}

		fmt.Printf("Study streak: %d days\n\n", p.Streak.Current(time.Now()))
		fmt.Printf("%-28s  %8s  %9s  %8s\n", "Set", "Mastery", "Learned", "Attempts")
		fmt.Println(strings.Repeat("─", 60))

		for _, set := range p.Sets {
			learned, attempts := 0, 0
			for _, c := range set.Cards {
				rec, ok := profileSvc.Mastery(set.ID, c.ID)
				if !ok {
					continue
				}
				attempts += rec.Attempts
				if rec.Learned() {
					learned++
				}
			}
			fmt.Printf("%-28s  %7d%%  %4d/%-4d  %8d\n",
				truncate(set.Title, 28), p.SetProgress(set.ID), learned, len(set.Cards), attempts)
		}
		return nil
	},
}
