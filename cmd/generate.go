package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/llm"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new card set with the LLM",
	Long: `Generate a term/definition card set from a topic or a source text file
and save it to your profile. Use --dry-run to print the cards without saving.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Topic to generate cards for")
	generateCmd.Flags().String("from-file", "", "Path to a source text file to extract cards from")
	generateCmd.Flags().Int("count", 10, "Number of cards")
	generateCmd.Flags().String("language", "", "Language for terms and definitions")
	generateCmd.Flags().String("difficulty", "", "Difficulty hint (e.g. beginner, advanced)")
	generateCmd.Flags().Bool("dry-run", false, "Print the generated cards without saving")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	topic, _ := cmd.Flags().GetString("topic")
	fromFile, _ := cmd.Flags().GetString("from-file")
	count, _ := cmd.Flags().GetInt("count")
	language, _ := cmd.Flags().GetString("language")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if topic == "" && fromFile == "" {
		return fmt.Errorf("either --topic or --from-file is required")
	}

	input := cardgen.GenerateInput{
		Kind:       cardgen.SourceTopic,
		Topic:      topic,
		Count:      count,
		Language:   language,
		Difficulty: difficulty,
	}
	if fromFile != "" {
		text, err := os.ReadFile(fromFile)
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}
		input.Kind = cardgen.SourceText
		input.Text = string(text)
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

	eventRepo, err := st.EventRepo()
	if err != nil {
		return fmt.Errorf("open event repo: %w", err)
	}

	profileSvc, err := profile.Load(ctx, st.ProfileRepo())
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	for _, set := range profileSvc.Profile().Sets {
		for _, c := range set.Cards {
			input.ExistingTerms = append(input.ExistingTerms, c.Term)
		}
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return err
	}

	generator := cardgen.New(provider, cardgen.DefaultConfig())
	res, err := generator.Generate(ctx, input)
	if err != nil {
		return fmt.Errorf("generate set: %w", err)
	}

	fmt.Printf("%s\n", res.Title)
	if res.Description != "" {
		fmt.Printf("%s\n", res.Description)
	}
	fmt.Println(strings.Repeat("─", 60))
	for _, c := range res.Cards {
		fmt.Printf("  %-24s  %s\n", c.Term, c.Definition)
	}

	if dryRun {
		return nil
	}

	profileSvc.Profile().AddSet(deck.StudySet{
		ID:          uuid.New().String(),
		Title:       res.Title,
		Description: res.Description,
		Cards:       res.Cards,
	})
	if err := profileSvc.Save(ctx); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	fmt.Printf("\nSaved %q with %d cards.\n", res.Title, len(res.Cards))
	return nil
}
