package app

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SanCognition/reap/internal/complete"
	"github.com/SanCognition/reap/internal/output"
	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/internal/scan"
	"github.com/SanCognition/reap/internal/tui"
	"github.com/SanCognition/reap/pkg/model"
)

const defaultTarget = "node"

// tableFactory builds the process table accessor. Tests swap it out.
var tableFactory = proc.DetectTable

var (
	flagForce      bool
	flagDryRun     bool
	flagJSON       bool
	flagNoColor    bool
	flagWatch      bool
	flagStuckAfter time.Duration
	flagCPUFloor   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "reap [executable]",
	Short: "Find and kill stray interpreter processes",
	Long: `reap scans the process table for copies of an executable that were left
behind: orphaned (their parent is gone) or stuck (not responding, or
running for a long time with almost no CPU use). It reports what it
found and, after confirmation, kills each candidate together with its
descendants, deepest child first.

Nothing is ever killed without --force or an explicit yes.`,
	Example: `  reap                   stray node processes
  reap python            stray python processes
  reap node --dry-run    report only, never kill
  reap node --force      skip the confirmation prompt
  reap node --json       machine-readable report
  reap node --watch      live dashboard`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return complete.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "kill without asking")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "report only, never kill")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print the report as JSON (never prompts)")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colors")
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live dashboard instead of a one-shot report")
	rootCmd.Flags().DurationVar(&flagStuckAfter, "stuck-after", scan.DefaultStuckAfter, "uptime before an idle process counts as stuck")
	rootCmd.Flags().DurationVar(&flagCPUFloor, "cpu-floor", scan.DefaultCPUFloor, "CPU time below which a long-lived process counts as stuck")
}

func run(cmd *cobra.Command, args []string) error {
	name := defaultTarget
	if len(args) > 0 {
		name = args[0]
	}

	table := tableFactory()
	thresholds := scan.Thresholds{StuckAfter: flagStuckAfter, CPUFloor: flagCPUFloor}

	if flagWatch {
		return runWatch(name, table, thresholds)
	}

	out := cmd.OutOrStdout()
	report := scan.NewScanner(table, thresholds).Scan(name)

	if flagJSON {
		return runJSON(out, table, report)
	}

	colorEnabled := output.DetectColor(flagNoColor)
	output.RenderReport(out, report, time.Now(), colorEnabled)

	// Findings are not errors; the exit status stays zero whether or not
	// anything was killed.
	if len(report.Candidates) == 0 || flagDryRun {
		return nil
	}

	if !flagForce {
		fmt.Fprintln(out)
		if !output.Confirm(cmd.InOrStdin(), out, "Kill these processes?") {
			fmt.Fprintln(out, "Cancelled. No processes were touched.")
			return nil
		}
	}

	fmt.Fprintln(out)
	term := purge.NewTerminator(table)
	term.OnAttempt = func(a purge.Attempt) {
		output.RenderAttempt(out, a, colorEnabled)
	}
	summary := term.Purge(report.Candidates)

	fmt.Fprintln(out)
	output.RenderPurgeSummary(out, summary, colorEnabled)
	return nil
}

// runJSON prints the report as JSON. With --force it also purges and
// prints the outcome as a second document; JSON mode never prompts.
func runJSON(out io.Writer, table proc.Table, report model.Report) error {
	doc, err := output.ToJSON(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Fprintln(out, doc)

	if !flagForce || flagDryRun || len(report.Candidates) == 0 {
		return nil
	}

	term := purge.NewTerminator(table)
	var attempts []purge.Attempt
	term.OnAttempt = func(a purge.Attempt) {
		attempts = append(attempts, a)
	}
	summary := term.Purge(report.Candidates)

	doc, err = output.PurgeJSON(summary, attempts)
	if err != nil {
		return fmt.Errorf("encoding purge outcome: %w", err)
	}
	fmt.Fprintln(out, doc)
	return nil
}

// runWatch launches the interactive dashboard
func runWatch(name string, table proc.Table, thresholds scan.Thresholds) error {
	p := tea.NewProgram(tui.New(name, table, thresholds), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// Execute runs the root command. Findings and purge failures do not
// affect the exit status; only unexpected errors do.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
