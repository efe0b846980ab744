// Command facto factors integers and certifies primes from the command line.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	facto "github.com/corrodedHash/facto"
	"github.com/corrodedHash/facto/logger"
)

var rootCmd = &cobra.Command{
	Use:     "facto",
	Short:   "certified integer factorization",
	Version: facto.Version.String(),
}

var fQuiet bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&fQuiet, "quiet", "q", false, "disable progress logging")
	cobra.OnInitialize(func() {
		if fQuiet {
			logger.Disable()
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseArg reads the single positional decimal argument of a command.
func parseArg(args []string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal integer", args[0])
	}
	return n, nil
}
