package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mind-engage/spellquest/internal/grading"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

var (
	checkTarget  string
	checkMode    string
	checkPenalty float64
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check ANSWER",
		Short:   "Grade one spoken answer against a word",
		Example: `  spellquest check --target cat --mode test "cat, c, a, t, cat"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheckCmd,
	}
	cmd.Flags().StringVar(&checkTarget, "target", "", "word the learner was asked to spell")
	cmd.Flags().StringVar(&checkMode, "mode", string(grading.ModePractice), "practice or test")
	cmd.Flags().Float64Var(&checkPenalty, "penalty", 0.5, "points lost per extra letter in test mode")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	mode, err := grading.ParseMode(checkMode)
	if err != nil {
		return err
	}
	if strings.TrimSpace(checkTarget) == "" {
		return fmt.Errorf("--target must not be blank")
	}
	res := grading.NewEvaluator(grading.WithOverrunPenalty(checkPenalty)).Evaluate(args[0], checkTarget, mode)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
	return err
}

func renderResult(res grading.Result) string {
	var b strings.Builder
	b.WriteString(renderFeedback(grading.BuildDisplayFeedback(res)))
	b.WriteString("\n\n")

	score := fmt.Sprintf("score %.1f%%", res.Score)
	if res.Mode == grading.ModeTest {
		score += fmt.Sprintf("  (%.1f / %.0f points)", res.PointsEarned, res.MaxPoints)
	}
	b.WriteString(scoreStyle.Render(score))
	if res.Mode == grading.ModePractice {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(grading.Hint(res)))
	}
	return boxStyle.Render(b.String())
}

func renderFeedback(parts []grading.FeedbackPart) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.Type == grading.PartSeparator:
			b.WriteString(mutedStyle.Render(p.Text + " "))
		case p.Type == grading.PartFormatError:
			b.WriteString(badStyle.Render(p.Text))
		case p.IsCorrect:
			b.WriteString(okStyle.Render(p.Text))
		default:
			b.WriteString(badStyle.Render(p.Text))
		}
	}
	return b.String()
}
