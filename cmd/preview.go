package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/llm"
	"github.com/rsinha/flashdown/internal/study"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated cards for a topic (no database)",
	Long: `Generate cards for a topic and quiz yourself on them in the terminal.

This is a stateless developer tool — no database, no mastery tracking, no
events. Useful for evaluating card quality before saving a set.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Topic to generate cards for (required)")
	previewCmd.Flags().Int("count", 5, "Number of cards to generate")
	previewCmd.Flags().String("difficulty", "", "Difficulty hint")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	// No event repo: preview runs without a database.
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return err
	}

	generator := cardgen.New(provider, cardgen.DefaultConfig())
	res, err := generator.Generate(ctx, cardgen.GenerateInput{
		Kind:       cardgen.SourceTopic,
		Topic:      topic,
		Count:      count,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("generate cards: %w", err)
	}

	fmt.Printf("%s — %d cards\n\n", res.Title, len(res.Cards))

	reader := bufio.NewReader(os.Stdin)
	correct := 0
	for i, c := range res.Cards {
		fmt.Printf("[%d/%d] %s\n", i+1, len(res.Cards), c.Definition)
		fmt.Print("term> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		if study.CheckTyped(line, c.Term) {
			correct++
			fmt.Println("Correct!")
		} else {
			fmt.Printf("The answer was: %s\n", c.Term)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("Score: %d/%d\n", correct, len(res.Cards))
	return nil
}
