package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/sheetlite/sheetlite"
)

// Terminal styles shared by all subcommands.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func printHeader() {
	fmt.Println(accentStyle.Render("sheetlite") + mutedStyle.Render(" · workbooks to SQLite"))
	fmt.Println()
}

func printResult(result sheetlite.FileResult) {
	if result.Success() {
		fmt.Printf("%s %s %s %s\n", successStyle.Render("✓"), result.Source, arrow(), result.Database)
		return
	}
	fmt.Printf("%s %s %s\n", errorStyle.Render("✗"), result.Source,
		mutedStyle.Render(fmt.Sprintf("(%s: %s)", result.Kind, result.Message)))
}

func printSummary(summary *sheetlite.Summary) {
	fmt.Println()
	fmt.Println(mutedStyle.Render(strings.Repeat("─", 60)))
	fmt.Println(titleStyle.Render("Batch conversion complete"))
	fmt.Printf("Succeeded: %s\n", successStyle.Render(fmt.Sprintf("%d/%d", summary.Succeeded(), len(summary.Results))))
	if summary.Failed() > 0 {
		fmt.Printf("Failed:    %s\n", errorStyle.Render(fmt.Sprintf("%d", summary.Failed())))
	}

	if len(summary.Reports) > 0 {
		fmt.Println()
		for _, path := range summary.Reports {
			fmt.Printf("%s report %s\n", successStyle.Render("✓"), path)
		}
	}
	for _, path := range summary.ReportSkipped {
		printNotice(fmt.Sprintf("no tables in %s, report skipped", path))
	}
	for _, failure := range summary.ReportFailures {
		fmt.Printf("%s report for %s failed: %s\n", errorStyle.Render("✗"), failure.Source, failure.Message)
	}
}

func printNotice(message string) {
	fmt.Println(mutedStyle.Render(message))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+err.Error())
}

func arrow() string {
	return mutedStyle.Render("→")
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(0,
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// formatBytes renders a byte count in a human-friendly unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
