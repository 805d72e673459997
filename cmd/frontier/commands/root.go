package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	periodsPerYear int
	riskFreeRate   float64
	verbose        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "frontier",
	Short: "Mean-variance portfolio analytics",
	Long: `Frontier - risk/return statistics and mean-variance optimal portfolios.

Given aligned periodic returns for a set of assets, it computes risk metrics
(volatility, VaR/CVaR, drawdown, higher moments) and solves constrained
optimization problems for the efficient frontier, the maximum-Sharpe
portfolio, and the minimum-volatility portfolio.

Usage:
  go run ./cmd/frontier [command]

Examples:
  go run ./cmd/frontier stats --input returns.csv --periods 12
  go run ./cmd/frontier frontier --input returns.csv --points 25 --rf 0.02
  go run ./cmd/frontier api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().IntVar(&periodsPerYear, "periods", 12, "return periods per year (12=monthly, 52=weekly, 252=daily)")
	rootCmd.PersistentFlags().Float64Var(&riskFreeRate, "rf", 0.0, "annual risk-free rate (decimal)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
