package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	facto "github.com/corrodedHash/facto"
	"github.com/corrodedHash/facto/encoding"
	"github.com/corrodedHash/facto/factoring"
)

var factorCmd = &cobra.Command{
	Use:   "factor [n]",
	Short: "resolves n into certified prime powers",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdFactor,
}

var (
	fBudget      int64
	fParallelism int
	fTrialBound  uint64
	fRhoRestarts int
	fOutputPath  string
)

func init() {
	rootCmd.AddCommand(factorCmd)
	factorCmd.Flags().Int64Var(&fBudget, "budget", 0, "operation budget, 0 for unlimited")
	factorCmd.Flags().IntVarP(&fParallelism, "parallelism", "p", 1, "number of residues resolved concurrently")
	factorCmd.Flags().Uint64Var(&fTrialBound, "trial-bound", 0, "trial division bound, 0 for the default")
	factorCmd.Flags().IntVar(&fRhoRestarts, "rho-restarts", 0, "Pollard rho restarts per residue, 0 for the default")
	factorCmd.Flags().StringVarP(&fOutputPath, "output", "o", "", "write the CBOR-encoded result to this path")
}

func factorOptions() []factoring.Option {
	var opts []factoring.Option
	if fBudget > 0 {
		opts = append(opts, factoring.WithBudget(fBudget))
	}
	if fParallelism > 1 {
		opts = append(opts, factoring.WithParallelism(fParallelism))
	}
	if fTrialBound > 0 {
		opts = append(opts, factoring.WithTrialBound(fTrialBound))
	}
	if fRhoRestarts > 0 {
		opts = append(opts, factoring.WithRhoRestarts(fRhoRestarts))
	}
	return opts
}

func cmdFactor(cmd *cobra.Command, args []string) error {
	n, err := parseArg(args)
	if err != nil {
		return err
	}

	res, err := facto.FactorContext(cmd.Context(), n, factorOptions()...)
	if err != nil {
		var incomplete *factoring.IncompleteError
		if errors.As(err, &incomplete) {
			fmt.Fprintf(os.Stderr, "budget exhausted; unresolved residue %s\n", incomplete.Residue)
			for _, f := range incomplete.Partial {
				fmt.Fprintf(os.Stderr, "  proven so far: %s\n", formatFactor(f))
			}
		}
		return err
	}

	parts := make([]string, len(res.Factors))
	for i, f := range res.Factors {
		parts[i] = formatFactor(f)
	}
	fmt.Printf("%s = %s\n", res.N, strings.Join(parts, " * "))

	if fOutputPath != "" {
		return encoding.Write(fOutputPath, res)
	}
	return nil
}

func formatFactor(f factoring.Factor) string {
	if f.Exponent == 1 {
		return f.Prime.String()
	}
	return fmt.Sprintf("%s^%d", f.Prime, f.Exponent)
}
