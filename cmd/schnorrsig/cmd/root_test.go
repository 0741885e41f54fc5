package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/canopy-network/canopy/lib/schnorr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCurvesCommand(t *testing.T) {
	out, err := run(t, "curves", "--family", "nist")
	require.NoError(t, err)
	for _, id := range []string{"P-192", "P-224", "P-256", "P-384", "P-521"} {
		require.Contains(t, out, id)
	}
	require.NotContains(t, out, "brainpool")

	_, err = run(t, "curves", "--family", "nope")
	require.Error(t, err)
}

func TestDemoCommandCurve(t *testing.T) {
	out, err := run(t, "demo", "--setting", "ec", "--family", "SECG", "--curve", "secp256k1",
		"--nonce", "HmacSHA256PRNG", "--point", "FIXED_POINT", "--iterations", "2")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "valid: true"))

	// deterministic nonces sign the same message identically
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, lines[0], lines[2])
}

func TestDemoCommandRejectsUnknownStrategy(t *testing.T) {
	_, err := run(t, "demo", "--nonce", "Sloppy")
	require.ErrorContains(t, err, "--nonce")
}

func TestConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "schnorrsig.yaml")
	require.NoError(t, os.WriteFile(config, []byte("family: brainpool\n"), 0o600))

	out, err := run(t, "curves", "--config", config)
	require.NoError(t, err)
	require.Contains(t, out, "brainpoolP256r1")
	require.NotContains(t, out, "P-256")

	t.Setenv("SCHNORRSIG_FAMILY", "secg")
	out, err = run(t, "curves")
	require.NoError(t, err)
	require.Contains(t, out, "secp256k1")
	require.NotContains(t, out, "brainpool")
}

func TestParamsCommandRejectsWeakGroups(t *testing.T) {
	_, err := run(t, "params", "--l", "512", "--t", "128")
	require.Error(t, err)
}

func TestMetricsServerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := serveMetrics(ctx, "127.0.0.1:0", schnorr.NopLogger{})
	cancel()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("metrics server still running after its context was cancelled")
	}
}
