package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsinha/flashdown/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		events, closeStore, err := queryLLMEvents(cmd, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		defer closeStore()

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-7s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-7d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence %q: %w", args[0], err)
		}

		events, closeStore, err := queryLLMEvents(cmd, store.QueryOpts{
			After:  seq - 1,
			Before: seq + 1,
		})
		if err != nil {
			return err
		}
		defer closeStore()

		if len(events) == 0 {
			return fmt.Errorf("event %d not found", seq)
		}
		e := events[0]

		sep := strings.Repeat("─", 60)

		fmt.Printf("Seq:       %d\n", e.Sequence)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if e.RequestBody != "" {
			fmt.Println(e.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if e.ResponseBody != "" {
			fmt.Println(e.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage by purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, closeStore, err := queryLLMEvents(cmd, store.QueryOpts{})
		if err != nil {
			return err
		}
		defer closeStore()

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		type usage struct {
			requests int
			failed   int
			in, out  int
		}
		byPurpose := make(map[string]*usage)
		for _, e := range events {
			u := byPurpose[e.Purpose]
			if u == nil {
				u = &usage{}
				byPurpose[e.Purpose] = u
			}
			u.requests++
			if !e.Success {
				u.failed++
			}
			u.in += e.InputTokens
			u.out += e.OutputTokens
		}

		purposes := make([]string, 0, len(byPurpose))
		for p := range byPurpose {
			purposes = append(purposes, p)
		}
		sort.Strings(purposes)

		fmt.Printf("%-14s  %8s  %6s  %10s  %10s\n",
			"Purpose", "Requests", "Failed", "In tokens", "Out tokens")
		fmt.Println(strings.Repeat("─", 56))
		var total usage
		for _, p := range purposes {
			u := byPurpose[p]
			fmt.Printf("%-14s  %8d  %6d  %10d  %10d\n",
				p, u.requests, u.failed, u.in, u.out)
			total.requests += u.requests
			total.failed += u.failed
			total.in += u.in
			total.out += u.out
		}
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-14s  %8d  %6d  %10d  %10d\n",
			"total", total.requests, total.failed, total.in, total.out)

		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Max events to list")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (card-gen, distractors, study-guide)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

// queryLLMEvents opens the store and fetches events; the returned func
// closes the store.
func queryLLMEvents(cmd *cobra.Command, opts store.QueryOpts) ([]store.LLMRequestEventRecord, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	repo, err := st.EventRepo()
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("open event repo: %w", err)
	}
	events, err := repo.LLMRequests(context.Background(), opts)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("query events: %w", err)
	}
	return events, func() { st.Close() }, nil
}
