package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/schnorr"
)

const (
	flagStrength = "strength"
	flagL        = "l"
	flagT        = "t"
	flagExact    = "exact"
	flagTimeout  = "timeout"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Resolve a strength tier or search a custom Schnorr group",
		Long: "Resolve a strength tier (MINIMAL, DEFAULT, STRONG) or, with --l and --t, " +
			"search a Schnorr group with bitlen(p) = l and bitlen(q) = t.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromCmd(cmd)

			spec, err := paramsSpec(e)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout := e.v.GetDuration(flagTimeout); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			generator := schnorr.NewKeyPairGenerator(schnorr.WithLogger(e.logger), schnorr.WithAuditHandler(e.audit))
			pair, err := generator.GenerateMultiplicative(ctx, spec)
			if err != nil {
				return err
			}
			params := pair.Public.Params().(*schnorr.MultiplicativeParams)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "p (%d bits): %x\n", params.P.BitLen(), params.P)
			fmt.Fprintf(out, "q (%d bits): %x\n", params.Q.BitLen(), params.Q)
			fmt.Fprintf(out, "g: %x\n", params.G)
			return nil
		},
	}
	cmd.Flags().String(flagStrength, "DEFAULT", "Strength tier: MINIMAL, DEFAULT or STRONG")
	cmd.Flags().Int(flagL, 0, "Bit length of p for a custom search")
	cmd.Flags().Int(flagT, 0, "Bit length of q for a custom search")
	cmd.Flags().Bool(flagExact, false, "Only accept p of exactly --l bits")
	cmd.Flags().Duration(flagTimeout, 0, "Abort the search after this long (0 waits forever)")
	return cmd
}

func paramsSpec(e *env) (schnorr.KeyGenSpec, error) {
	l, t := e.v.GetInt(flagL), e.v.GetInt(flagT)
	if l != 0 || t != 0 {
		return schnorr.NewKeyGenSpec(l, t, false, e.v.GetBool(flagExact))
	}
	strength, err := schnorr.ParseStrength(e.v.GetString(flagStrength))
	if err != nil {
		return schnorr.KeyGenSpec{}, err
	}
	return schnorr.NewStrengthSpec(strength, false)
}
