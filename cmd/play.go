package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/mathtext"
	"github.com/alevelmaths/alevel/internal/quiz"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <level-topic>",
	Short: "Answer one topic's questions line by line (no TUI)",
	Long: `Work through a topic in plain terminal mode, e.g.

  alevel play alevel-differentiation
  alevel play further-complex-numbers

Run "alevel topics" to list identifiers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		return playTopic(cmd.InOrStdin(), cmd.OutOrStdout(), cat, args[0])
	},
}

// playTopic runs a quiz for the "{level}-{topic}" identifier arg, reading
// answers from in.
func playTopic(in io.Reader, out io.Writer, cat *catalog.Catalog, arg string) error {
	level, topicID, ok := catalog.TopicID(arg).Split()
	if !ok || !level.Valid() {
		return fmt.Errorf("invalid topic %q: want {level}-{topic}, e.g. alevel-algebra", arg)
	}
	topic, ok := cat.Topic(level, topicID)
	if !ok {
		return fmt.Errorf("no topic %q in %s", topicID, level.DisplayName())
	}

	sess := session.New(cat, session.WithJournal(store.NewMemoryStore(store.DefaultCapacity)))
	defer sess.End()

	st := sess.SelectTopic(level, topicID).State
	fmt.Fprintf(out, "%s: %s\n\n", level.DisplayName(), topic.Name)

	if st.View == session.ViewEmpty {
		fmt.Fprintln(out, "Coming Soon")
		fmt.Fprintln(out, "Problems for this topic are being prepared.")
		return nil
	}

	scanner := bufio.NewScanner(in)
	for st.View == session.ViewQuiz {
		qs := st.Quiz
		if qs.Phase == quiz.PhaseAnswering {
			p := qs.Problem
			fmt.Fprintf(out, "── Question %d/%d ── Score: %d/%d\n", qs.Number, qs.Total, qs.Correct, qs.Attempted)
			fmt.Fprintln(out, p.Question)
			if p.LaTeX != "" {
				text, _ := mathtext.Display(p.LaTeX)
				fmt.Fprintf(out, "\n    %s\n", text)
			}
			if p.Hint != "" {
				fmt.Fprintf(out, "Hint: %s\n", p.Hint)
			}

			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return nil
			}

			res, err := sess.SubmitAnswer(scanner.Text())
			if errors.Is(err, quiz.ErrBlankAnswer) {
				fmt.Fprintln(out, "(enter an answer)")
				continue
			}
			if err != nil {
				return err
			}
			st = res.State
			printReview(out, st.Quiz)
		}

		res, err := sess.Advance()
		if err != nil {
			return err
		}
		st = res.State
	}

	if sum := session.BuildSummary(st, cat); sum != nil {
		fmt.Fprintf(out, "── %s ──\n", sum.Headline())
		fmt.Fprintf(out, "Best score: %d%%\n", sum.Best)
		if sum.Mastered {
			fmt.Fprintln(out, "Topic mastered!")
		}
	}
	return nil
}

func printReview(out io.Writer, qs quiz.State) {
	if qs.LastVerdict == quiz.VerdictCorrect {
		fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Fprintf(out, "\033[31m✗ Incorrect.\033[0m Correct answer: %s\n", qs.Problem.Answer)
	}
	if len(qs.Problem.Solution) > 0 {
		fmt.Fprintln(out, "Solution:")
		for i, step := range qs.Problem.Solution {
			fmt.Fprintf(out, "  %d. %s\n", i+1, strings.TrimSpace(step))
		}
	}
	fmt.Fprintln(out)
}
