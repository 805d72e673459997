package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wonny/frontier/internal/risk"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Per-asset risk/return summary statistics",
	Long: `Computes summary statistics for every asset in a return matrix:
annualized return, annualized volatility, Sharpe ratio, skewness, kurtosis,
historic CVaR, Cornish-Fisher VaR, and maximum drawdown.

Example:
  go run ./cmd/frontier stats --input returns.csv --periods 252 --rf 0.02
  go run ./cmd/frontier stats --input returns.csv --var-level 0.01`,
	RunE: runStats,
}

var (
	statsInput    string
	statsVaRLevel float64
)

func init() {
	rootCmd.AddCommand(statsCmd)

	// Flags
	statsCmd.Flags().StringVar(&statsInput, "input", "", "CSV file with asset returns (header = asset names)")
	statsCmd.Flags().Float64Var(&statsVaRLevel, "var-level", 0.05, "VaR tail probability (0.05 = 95% VaR)")
	statsCmd.MarkFlagRequired("input")
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := loadReturnsCSV(statsInput)
	if err != nil {
		return err
	}

	stats := risk.SummarizeMatrix(m, riskFreeRate, periodsPerYear, statsVaRLevel)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Asset\tAnn.Return\tAnn.Vol\tSharpe\tSkew\tKurtosis\tCVaR\tC-F VaR\tMaxDD")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Asset, s.AnnualReturn, s.AnnualVolatility, s.Sharpe,
			s.Skewness, s.Kurtosis, s.HistoricCVaR, s.CornishFisherVaR, s.MaxDrawdown)
	}
	return tw.Flush()
}
