package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alevelmaths/alevel/internal/authoring"
	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/llm"
	"github.com/alevelmaths/alevel/internal/store"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new problems for a topic with an LLM (for human review)",
	Long: `Ask the configured LLM provider for candidate problems for one topic.

Drafts are validated like bank content, de-duplicated against the topic's
existing questions and printed as a JSON topic entry. Nothing is added to
the question bank; review the output and merge it by hand.

Provider selection: ALEVEL_LLM_PROVIDER plus ALEVEL_<PROVIDER>_API_KEY, or
any of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY.`,
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().String("level", "", "Level of the topic: alevel or further (required)")
	draftCmd.Flags().String("topic", "", "Topic ID within the level, e.g. polar-coordinates (required)")
	draftCmd.Flags().Int("count", authoring.DefaultConfig().Count, "Number of problems to request")
	draftCmd.Flags().StringP("out", "o", "", "Write the JSON fragment to this file instead of stdout")
	_ = draftCmd.MarkFlagRequired("level")
	_ = draftCmd.MarkFlagRequired("topic")
}

func runDraft(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetString("level")
	topicVal, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	outPath, _ := cmd.Flags().GetString("out")

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	level, err := catalog.ParseLevel(levelVal)
	if err != nil {
		return err
	}
	topic, ok := cat.Topic(level, topicVal)
	if !ok {
		return fmt.Errorf("no topic %q in %s", topicVal, level.DisplayName())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	journal := store.NewMemoryStore(store.DefaultCapacity)
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, journal)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	if llmCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, llmCfg.Timeout)
		defer cancel()
	}

	cfg := authoring.DefaultConfig()
	cfg.Count = count
	drafter := authoring.New(provider, cfg, authoring.WithJournal(journal))

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Drafting %d problems for %s: %s (%s)...\n", count, level.DisplayName(), topic.Name, provider.ModelID())

	result, err := drafter.Draft(ctx, authoring.DraftInput{
		Level:    level,
		Topic:    topic,
		Existing: cat.Problems(level, topic.ID),
	})
	if result != nil {
		for _, r := range result.Rejected {
			fmt.Fprintf(stderr, "warning: dropped %q: %s\n", truncate(r.Problem.Question, 60), r.Reason)
		}
	}
	printUsage(ctx, stderr, journal)
	if err != nil {
		if errors.Is(err, authoring.ErrNothingAccepted) {
			return fmt.Errorf("%w (%d rejected)", err, len(result.Rejected))
		}
		return err
	}

	data, err := json.MarshalIndent(result.Fragment(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode fragment: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(stderr, "Wrote %d problems to %s\n", len(result.Accepted), outPath)
	return nil
}

// modelUsage aggregates LLM calls per model.
type modelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// usageByModel sums the journal's LLM request events per model.
func usageByModel(ctx context.Context, repo store.EventRepo) ([]modelUsage, error) {
	events, err := repo.Query(ctx, store.QueryOpts{Kind: store.KindLLMRequest})
	if err != nil {
		return nil, err
	}
	byModel := make(map[string]*modelUsage)
	for _, e := range events {
		r := e.LLMRequest
		mu, ok := byModel[r.Model]
		if !ok {
			mu = &modelUsage{Model: r.Model}
			byModel[r.Model] = mu
		}
		mu.Calls++
		mu.InputTokens += r.InputTokens
		mu.OutputTokens += r.OutputTokens
	}

	out := make([]modelUsage, 0, len(byModel))
	for _, mu := range byModel {
		out = append(out, *mu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out, nil
}

// printUsage writes token counts and estimated cost for the LLM calls
// made during this command.
func printUsage(ctx context.Context, w io.Writer, repo store.EventRepo) {
	usage, err := usageByModel(ctx, repo)
	if err != nil {
		fmt.Fprintf(w, "warning: read LLM usage: %v\n", err)
		return
	}
	if len(usage) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 76))

	var total float64
	var unknown []string
	for _, mu := range usage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknown = append(unknown, mu.Model)
			fmt.Fprintf(w, "%s  %6d  %10d  %10d  %10s\n",
				fit(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		total += c
		fmt.Fprintf(w, "%s  %6d  %10d  %10d  %10s\n",
			fit(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	if len(usage) > 1 {
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	}
	if len(unknown) > 0 {
		fmt.Fprintf(w, "Pricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	fmt.Fprintln(w)
}

// truncate shortens s to at most width terminal cells, ending in "…" when
// cut. Questions routinely contain multi-byte symbols such as × and √.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// fit truncates s and pads it to exactly width cells.
func fit(s string, width int) string {
	s = truncate(s, width)
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
