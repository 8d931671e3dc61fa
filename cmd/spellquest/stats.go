package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mind-engage/spellquest/internal/config"
	"github.com/mind-engage/spellquest/internal/db"
	"github.com/mind-engage/spellquest/internal/stats"
)

var (
	statsDriver string
	statsDSN    string
	statsJSON   bool
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-word results, hardest words first",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDriver, "driver", "", "sqlite or postgres (default: DB_DRIVER)")
	cmd.Flags().StringVar(&statsDSN, "dsn", "", "database DSN (default: DB_DSN)")
	cmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if statsDriver != "" {
		cfg.DBDriver = statsDriver
	}
	if statsDSN != "" {
		cfg.DBDSN = statsDSN
	}
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		return err
	}
	if driver == db.DriverMemory {
		return fmt.Errorf("stats needs a persistent database; set --driver or DB_DRIVER")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	conn, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer conn.Close()

	list, err := stats.NewSQLStore(conn).List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}
	sum := stats.Aggregate(list)

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	return printSummary(cmd.OutOrStdout(), sum)
}

func printSummary(w io.Writer, sum stats.Summary) error {
	if len(sum.WordStats) == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded yet.")
		return err
	}

	cols := []struct {
		title string
		width int
	}{{"WORD", 16}, {"LEVEL", 8}, {"TRIES", 6}, {"RIGHT", 6}, {"WRONG", 6}, {"SUCCESS", 9}, {"TEST AVG", 9}}

	var b strings.Builder
	for _, c := range cols {
		b.WriteString(headerStyle.Width(c.width).Render(c.title))
	}
	b.WriteString("\n")
	for _, ws := range sum.WordStats {
		testAvg := "-"
		if ws.TestModeAttempts > 0 {
			testAvg = fmt.Sprintf("%.1f%%", ws.AverageTestScore)
		}
		cells := []string{
			ws.WordText,
			ws.Difficulty,
			fmt.Sprint(ws.TotalAttempts),
			fmt.Sprint(ws.CorrectAttempts),
			fmt.Sprint(ws.IncorrectAttempts),
			fmt.Sprintf("%.1f%%", ws.SuccessRate),
			testAvg,
		}
		for i, c := range cells {
			style := cellStyle
			if i == 5 && ws.SuccessRate < 50 {
				style = badStyle
			}
			b.WriteString(style.Width(cols[i].width).Render(c))
		}
		b.WriteString("\n")
	}
	if sum.OverallAverageTestScore != nil {
		b.WriteString("\n")
		b.WriteString(scoreStyle.Render(fmt.Sprintf("overall test average %.1f%%", *sum.OverallAverageTestScore)))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
