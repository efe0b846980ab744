package main

import (
	"fmt"

	"github.com/spf13/cobra"

	facto "github.com/corrodedHash/facto"
	"github.com/corrodedHash/facto/encoding"
	"github.com/corrodedHash/facto/primality"
)

var isPrimeCmd = &cobra.Command{
	Use:   "isprime [n]",
	Short: "reports the oracle verdict for n",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdIsPrime,
}

var certifyCmd = &cobra.Command{
	Use:   "certify [n]",
	Short: "builds an independently verifiable primality proof chain for n",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdCertify,
}

var (
	fChainPath string
	fProve     bool
)

func init() {
	rootCmd.AddCommand(isPrimeCmd)
	rootCmd.AddCommand(certifyCmd)
	isPrimeCmd.Flags().BoolVar(&fProve, "prove", false, "build a proof chain when the verdict would only be probable")
	certifyCmd.Flags().StringVarP(&fChainPath, "output", "o", "", "write the CBOR-encoded proof chain to this path")
}

func cmdIsPrime(_ *cobra.Command, args []string) error {
	n, err := parseArg(args)
	if err != nil {
		return err
	}
	var cert primality.Certificate
	if fProve {
		cert, err = facto.CertifiedTest(n)
		if err != nil {
			return err
		}
	} else {
		cert = facto.Test(n)
	}
	fmt.Printf("%s: %s\n", n, cert.Verdict)
	if cert.Witness != nil {
		fmt.Printf("compositeness witness: %s\n", cert.Witness)
	}
	if cert.Divisor != nil {
		fmt.Printf("divisor: %s\n", cert.Divisor)
	}
	return nil
}

func cmdCertify(_ *cobra.Command, args []string) error {
	n, err := parseArg(args)
	if err != nil {
		return err
	}

	chain, err := facto.Certify(n)
	if err != nil {
		return err
	}
	if err := chain.Verify(); err != nil {
		return fmt.Errorf("built chain fails verification: %w", err)
	}
	fmt.Printf("%s is prime; proof chain closes over %d elements\n", n, len(chain.Elements))

	if fChainPath != "" {
		return encoding.Write(fChainPath, chain)
	}
	return nil
}
