package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/llm"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/store"
)

var guideCmd = &cobra.Command{
	Use:   "guide <set>",
	Short: "Generate a study guide for a set",
	Long:  "Generate an LLM study guide for a set, weighted towards the cards you keep missing. The set is matched by ID or title.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuide,
}

func runGuide(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo, err := st.EventRepo()
	if err != nil {
		return fmt.Errorf("open event repo: %w", err)
	}

	profileSvc, err := profile.Load(ctx, st.ProfileRepo())
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	set := findSet(profileSvc.Profile(), args[0])
	if set == nil {
		return fmt.Errorf("no set matching %q", args[0])
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return err
	}
	svc := guide.NewService(provider, guide.DefaultConfig())

	cards := make([]guide.CardSummary, 0, len(set.Cards))
	for _, c := range set.Cards {
		cards = append(cards, guide.CardSummary{Term: c.Term, Definition: c.Definition})
	}
	var weak []string
	if ids, err := eventRepo.RecentMisses(ctx, set.ID, 5); err == nil {
		for _, id := range ids {
			if card := set.CardByID(id); card != nil {
				weak = append(weak, card.Term)
			}
		}
	}

	fmt.Println("Writing your study guide...")
	svc.RequestGuide(ctx, guide.GuideInput{
		SetID:     set.ID,
		SetTitle:  set.Title,
		Language:  set.Language(),
		Cards:     cards,
		WeakTerms: weak,
		Progress:  float64(profileSvc.Profile().SetProgress(set.ID)) / 100,
	})

	g, err := awaitGuide(svc, 2*time.Minute)
	if err != nil {
		return err
	}
	printGuide(g)
	return nil
}

// awaitGuide polls the async service until the guide lands or the
// deadline passes.
func awaitGuide(svc *guide.Service, timeout time.Duration) (*guide.Guide, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if g, ok := svc.ConsumeGuide(); ok {
			return g, nil
		}
		if err := svc.Err(); err != nil {
			return nil, fmt.Errorf("generate guide: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil, fmt.Errorf("guide generation timed out")
}

func printGuide(g *guide.Guide) {
	sep := strings.Repeat("─", 60)

	fmt.Println()
	fmt.Println(g.Title)
	fmt.Println(sep)
	fmt.Println(g.Overview)
	for _, sec := range g.Sections {
		fmt.Println()
		fmt.Println(sec.Heading)
		fmt.Println(sec.Explanation)
		if len(sec.Terms) > 0 {
			fmt.Println("Terms:", strings.Join(sec.Terms, ", "))
		}
	}
	if len(g.Tips) > 0 {
		fmt.Println()
		fmt.Println("Tips")
		fmt.Println(sep)
		for _, tip := range g.Tips {
			fmt.Println("  •", tip)
		}
	}
}

// findSet matches a set by ID, exact title, or unique title prefix.
func findSet(p *profile.Profile, key string) *deck.StudySet {
	if set := p.SetByID(key); set != nil {
		return set
	}
	lower := strings.ToLower(key)
	var match *deck.StudySet
	for i := range p.Sets {
		title := strings.ToLower(p.Sets[i].Title)
		if title == lower {
			return &p.Sets[i]
		}
		if strings.HasPrefix(title, lower) {
			if match != nil {
				return nil // ambiguous
			}
			match = &p.Sets[i]
		}
	}
	return match
}
