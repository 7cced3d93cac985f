package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/store"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage your card sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sets",
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

		fmt.Printf("%-38s  %-28s  %5s  %8s\n", "ID", "Title", "Cards", "Mastery")
		fmt.Println(strings.Repeat("─", 86))
		for _, set := range p.Sets {
			fmt.Printf("%-38s  %-28s  %5d  %7d%%\n",
				set.ID, truncate(set.Title, 28), len(set.Cards), p.SetProgress(set.ID))
		}
		return nil
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "show <set>",
	Short: "Show a set's cards and per-card mastery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc, closeStore, err := openProfile(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		set := findSet(profileSvc.Profile(), args[0])
		if set == nil {
			return fmt.Errorf("no set matching %q", args[0])
		}

		fmt.Println(set.Title)
		if set.Description != "" {
			fmt.Println(set.Description)
		}
		fmt.Println(strings.Repeat("─", 70))
		for _, c := range set.Cards {
			masteryPct := 0
			if rec, ok := profileSvc.Mastery(set.ID, c.ID); ok {
				masteryPct = rec.Mastery
			}
			fmt.Printf("  %-24s  %-36s  %3d%%\n",
				truncate(c.Term, 24), truncate(c.Definition, 36), masteryPct)
		}
		return nil
	},
}

var setsDeleteCmd = &cobra.Command{
	Use:   "delete <set>",
	Short: "Delete a set and its mastery data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc, closeStore, err := openProfile(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		set := findSet(profileSvc.Profile(), args[0])
		if set == nil {
			return fmt.Errorf("no set matching %q", args[0])
		}

		title := set.Title
		profileSvc.Profile().DeleteSet(set.ID)
		if err := profileSvc.Save(cmd.Context()); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		fmt.Printf("Deleted %q.\n", title)
		return nil
	},
}

func init() {
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
	setsCmd.AddCommand(setsDeleteCmd)
}

// openProfile opens the store and loads the profile; the returned func
// closes the store.
func openProfile(cmd *cobra.Command) (*profile.Service, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	profileSvc, err := profile.Load(cmd.Context(), st.ProfileRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}
	return profileSvc, func() { st.Close() }, nil
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
