package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/schnorr"
)

const (
	flagSetting    = "setting"
	flagCurve      = "curve"
	flagNonce      = "nonce"
	flagPoint      = "point"
	flagDigest     = "digest"
	flagMessage    = "message"
	flagIterations = "iterations"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a key pair, sign a message and verify the signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromCmd(cmd)
			ctx := cmd.Context()

			provider := schnorr.NewProvider()
			for key, flag := range map[string]string{
				schnorr.PropertyMessageDigest:       flagDigest,
				schnorr.PropertyNonceStrategy:       flagNonce,
				schnorr.PropertyPointMultiplication: flagPoint,
			} {
				if err := provider.SetProperty(key, e.v.GetString(flag)); err != nil {
					return fmt.Errorf("--%s: %w", flag, err)
				}
			}
			cfg, err := provider.EngineConfig()
			if err != nil {
				return err
			}
			extended := cfg.NonceStrategy.Family() == schnorr.NonceFamilyDeterministic

			algorithm := schnorr.AlgorithmSchnorr
			if isCurveSetting(e.v.GetString(flagSetting)) {
				algorithm = schnorr.AlgorithmECSchnorr
			}
			generator, err := provider.NewKeyPairGenerator(algorithm,
				schnorr.WithLogger(e.logger), schnorr.WithAuditHandler(e.audit))
			if err != nil {
				return err
			}

			var pair *schnorr.KeyPair
			if algorithm == schnorr.AlgorithmECSchnorr {
				family, err := schnorr.ParseCurveFamily(e.v.GetString(flagFamily))
				if err != nil {
					return err
				}
				pair, err = generator.GenerateCurve(ctx, schnorr.CurveKeyGenSpec{
					Family:   family,
					CurveID:  e.v.GetString(flagCurve),
					Extended: extended,
				})
				if err != nil {
					return err
				}
			} else {
				spec, err := schnorr.NewStrengthSpec(schnorr.StrengthDefault, extended)
				if err != nil {
					return err
				}
				if pair, err = generator.GenerateMultiplicative(ctx, spec); err != nil {
					return err
				}
			}
			defer pair.Private.Zeroize()

			signer, err := provider.NewSignature(algorithm,
				schnorr.WithEngineLogger(e.logger), schnorr.WithEngineAuditHandler(e.audit))
			if err != nil {
				return err
			}
			verifier, err := provider.NewSignature(algorithm,
				schnorr.WithEngineLogger(e.logger), schnorr.WithEngineAuditHandler(e.audit))
			if err != nil {
				return err
			}
			if err := signer.InitSign(pair.Private); err != nil {
				return err
			}
			if err := verifier.InitVerify(pair.Public); err != nil {
				return err
			}

			message := []byte(e.v.GetString(flagMessage))
			out := cmd.OutOrStdout()
			for i := 0; i < max(1, e.v.GetInt(flagIterations)); i++ {
				if err := signer.Update(message); err != nil {
					return err
				}
				sig, err := signer.Sign()
				if err != nil {
					return err
				}
				if _, err := verifier.Write(message); err != nil {
					return err
				}
				valid, err := verifier.Verify(sig)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "signature: %x\nvalid: %t\n", sig, valid)
			}
			return nil
		},
	}
	cmd.Flags().String(flagSetting, "mult", "Algebraic setting: mult or ec")
	cmd.Flags().String(flagFamily, string(schnorr.FamilyBrainpool), "Curve family for --setting ec")
	cmd.Flags().String(flagCurve, "brainpoolP256r1", "Curve id for --setting ec")
	cmd.Flags().String(flagNonce, schnorr.AlmostUniform.String(), "Nonce strategy")
	cmd.Flags().String(flagPoint, schnorr.UnknownPoint.String(), "Point multiplication strategy")
	cmd.Flags().String(flagDigest, string(schnorr.DigestSHA256), "Message digest")
	cmd.Flags().String(flagMessage, "The quick brown fox jumps over the lazy dog.", "Message to sign")
	cmd.Flags().Int(flagIterations, 1, "Number of sign and verify rounds")
	return cmd
}

func isCurveSetting(setting string) bool {
	switch strings.ToLower(setting) {
	case "ec", "elliptic-curve", "curve":
		return true
	}
	return false
}
