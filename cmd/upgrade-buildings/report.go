package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/lacuna-upgrader/internal/config"
	"github.com/napolitain/lacuna-upgrader/internal/models"
	"github.com/napolitain/lacuna-upgrader/internal/scheduler"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("14")).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2)

func printBanner(out io.Writer, cfg *config.Config, rules int) {
	infoColor := color.New(color.FgYellow)

	fmt.Fprintln(out, bannerStyle.Render("Lacuna Expanse\nBuilding Upgrader"))
	fmt.Fprintln(out)

	infoColor.Fprintf(out, "📦 %d upgrade rules, empire %s on %s\n", rules, cfg.Empire.Name, cfg.Server)
	opts := cfg.RunOptions()
	if opts.DryRun {
		infoColor.Fprintln(out, "🔎 Dry run: nothing will be queued")
	} else {
		infoColor.Fprintf(out, "⏱️  Queue budget per colony: %s\n", formatDuration(opts.MaxTime))
	}
	if opts.Skip != "" {
		infoColor.Fprintf(out, "⏭️  Skipping %s\n", opts.Skip)
	}
	fmt.Fprintln(out)
}

func printReport(out io.Writer, results []scheduler.Result, opts models.RunConfig) {
	successColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed)

	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"#", "Colony", "Building", "Upgrade", "Status", "Build Time"}),
	)

	step := 0
	for _, r := range results {
		for _, d := range r.Decisions {
			step++
			buildTime := ""
			if d.Status == scheduler.StatusQueued {
				buildTime = formatTime(d.Seconds)
			}
			row := []string{
				fmt.Sprintf("%d", step),
				r.Colony.Name,
				d.Name,
				fmt.Sprintf("%d → %d", d.FromLevel, d.ToLevel),
				d.Status.String(),
				buildTime,
			}
			_ = table.Append(row)
		}
	}

	if step > 0 {
		_ = table.Render()
	}

	fmt.Fprintln(out, "\n📋 Colonies:")
	queued := 0
	for _, r := range results {
		queued += r.Queued()
		line := fmt.Sprintf("   %s: %s", r.Colony.Name, describe(r))

		switch r.Outcome {
		case scheduler.OutcomeCompleted:
			successColor.Fprintln(out, line)
		case scheduler.OutcomeAborted, scheduler.OutcomeSkipped:
			warnColor.Fprintln(out, line)
		default:
			errorColor.Fprintln(out, line)
		}
	}

	if opts.DryRun {
		successColor.Fprintf(out, "\n✓ Dry run: %d upgrades would be queued\n", step)
		return
	}
	successColor.Fprintf(out, "\n✓ Queued %d upgrades across %d colonies\n", queued, len(results))
}

func describe(r scheduler.Result) string {
	switch r.Outcome {
	case scheduler.OutcomeSkipped:
		return "skipped"
	case scheduler.OutcomeFailed:
		return fmt.Sprintf("failed (%v)", r.Err)
	}

	s := r.Outcome.String()
	if r.Reason != scheduler.ReasonNone {
		s += fmt.Sprintf(" (%s)", strings.ReplaceAll(string(r.Reason), "_", " "))
	}
	return fmt.Sprintf("%s, %d queued, queue %s", s, r.Queued(), formatDuration(r.QueueTime))
}

func formatTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// formatDuration renders seconds as a rough human duration ("2 days")
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "empty"
	}
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(time.Duration(seconds)*time.Second), "", ""))
}
