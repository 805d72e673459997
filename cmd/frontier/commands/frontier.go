package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wonny/frontier/internal/portfolio"
	"github.com/wonny/frontier/pkg/config"
	"github.com/wonny/frontier/pkg/logger"
)

// frontierCmd represents the frontier command
var frontierCmd = &cobra.Command{
	Use:   "frontier",
	Short: "Efficient frontier and reference portfolios",
	Long: `Computes the efficient frontier for a return matrix by sweeping a
target-return grid through the minimum-volatility solver, plus the
maximum-Sharpe, minimum-volatility and equally-weighted portfolios.

Example:
  go run ./cmd/frontier frontier --input returns.csv --points 25
  go run ./cmd/frontier frontier --input returns.csv --rf 0.02 --periods 252`,
	RunE: runFrontier,
}

var (
	frontierInput  string
	frontierPoints int
)

func init() {
	rootCmd.AddCommand(frontierCmd)

	// Flags
	frontierCmd.Flags().StringVar(&frontierInput, "input", "", "CSV file with asset returns (header = asset names)")
	frontierCmd.Flags().IntVar(&frontierPoints, "points", 20, "number of frontier grid points")
	frontierCmd.MarkFlagRequired("input")
}

func runFrontier(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}
	log := logger.New(cfg)

	m, err := loadReturnsCSV(frontierInput)
	if err != nil {
		return err
	}

	optimizer := portfolio.NewOptimizer(cfg.Solver.MaxIterations, cfg.Solver.Tolerance)
	builder := portfolio.NewBuilder(optimizer, log)

	frontier, err := builder.Build(m, periodsPerYear, riskFreeRate, frontierPoints)
	if err != nil {
		return fmt.Errorf("build frontier: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Return\tVolatility\tSharpe\tWeights")
	for _, p := range frontier.Portfolios {
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%s\n", p.Return, p.Volatility, p.Sharpe, formatWeights(frontier.Assets, p.Weights))
	}
	fmt.Fprintln(tw)

	labels := make([]string, 0, len(frontier.Named))
	for label := range frontier.Named {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintln(tw, "Portfolio\tReturn\tVolatility\tSharpe\tWeights")
	for _, label := range labels {
		p := frontier.Named[label]
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%s\n", label, p.Return, p.Volatility, p.Sharpe, formatWeights(frontier.Assets, p.Weights))
	}

	return tw.Flush()
}

func formatWeights(assets []string, weights []float64) string {
	out := ""
	for i, a := range assets {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%.3f", a, weights[i])
	}
	return out
}
