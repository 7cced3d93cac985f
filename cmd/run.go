package cmd

import (
	"fmt"
	"os"

	"github.com/rsinha/flashdown/internal/app"
	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/distractor"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/llm"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	deps := app.Deps{
		Profile: profileSvc,
		Events:  eventRepo,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set generation and study guides will be unavailable.")
	} else {
		deps.Distractors = distractor.NewGenerative(provider)
		deps.Generator = cardgen.New(provider, cardgen.DefaultConfig())
		deps.Guide = guide.NewService(provider, guide.DefaultConfig())
	}

	return app.Run(deps)
}
