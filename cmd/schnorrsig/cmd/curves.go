package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/schnorr"
)

const flagFamily = "family"

func newCurvesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "List the curve catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromCmd(cmd)

			families := schnorr.Families()
			if name := e.v.GetString(flagFamily); name != "" {
				family, err := schnorr.ParseCurveFamily(name)
				if err != nil {
					return err
				}
				families = []schnorr.CurveFamily{family}
			}

			out := cmd.OutOrStdout()
			for _, family := range families {
				ids, err := schnorr.CurveIDs(family)
				if err != nil {
					return err
				}
				for _, id := range ids {
					params, err := schnorr.ResolveCurve(family, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-10s %-18s order=%d bits cofactor=%s\n",
						family, id, params.N.BitLen(), params.Cofactor)
				}
			}
			return nil
		},
	}
	cmd.Flags().String(flagFamily, "", "Only list this family (NIST, BRAINPOOL, SAFECURVES, SECG)")
	return cmd
}
