package main

import (
    "bytes"
    "testing"

    "github.com/stretchr/testify/require"
    "gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
    t.Helper()
    var out bytes.Buffer
    cmd := newRootCmd()
    cmd.SetOut(&out)
    cmd.SetErr(&out)
    cmd.SetArgs(args)
    err := cmd.Execute()
    return out.String(), err
}

func TestConfigInit_PrintsYAML(t *testing.T) {
    t.Parallel()

    out, err := run(t, "config", "init")

    require.NoError(t, err)
    var doc map[string]any
    require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
    require.Contains(t, doc, "providers")
    require.Contains(t, doc, "chains")
}

func TestConfigValidate(t *testing.T) {
    t.Chdir(t.TempDir())

    out, err := run(t, "config", "validate")

    require.NoError(t, err)
    require.Contains(t, out, "price_history: [coingecko cryptocompare yahoo]\n")
    require.Contains(t, out, "config ok\n")
}

func TestAnalyze_ValidationFailsWithoutNetwork(t *testing.T) {
    t.Chdir(t.TempDir())

    out, err := run(t, "analyze", "BTC-USD", "--days", "-5")

    require.EqualError(t, err, "analyze failed")
    require.Contains(t, out, "Error: Period days must be positive")
}

func TestData_RequiresStart(t *testing.T) {
    t.Parallel()

    _, err := run(t, "data", "BTC-USD")

    require.ErrorContains(t, err, `required flag(s) "start" not set`)
}
