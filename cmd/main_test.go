package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one subcommand with fresh flag values and returns its stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, "", cmd, args...)
}

func runWithConfig(t *testing.T, configFile string, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd.Flags().VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	ConfigFile = configFile
	defer func() { ConfigFile = "" }()

	root := &cobra.Command{Use: "rscanner", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(cmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Test_ScanText(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/lib.rs", "invoke_signed(x);\nbalance += amount;")
	writeSource(t, dir, "target/gen.rs", "balance += amount;\n")

	out, err := run(t, scanCommand, "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Scanning "+dir+" for vulnerabilities...\n")
	assert.Contains(t, out, "3 potential vulnerabilities found:\n  HIGH : 1\n  MEDIUM : 2\n")
	assert.Contains(t, out, "[1] Reentrancy Vulnerability (HIGH)")
	assert.Contains(t, out, "[1] Unchecked Return Value (MEDIUM)")
	assert.Contains(t, out, "[2] Integer Overflow (MEDIUM)")
	assert.NotContains(t, out, "Code:")
	assert.Contains(t, out, "\nScan complete! Found 3 potential vulnerabilities.\n")
}

func Test_ScanNoFindings(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.rs", "fn main() {}\n")

	out, err := run(t, scanCommand, "--path", dir, "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "No vulnerabilities found!\n")
	assert.Contains(t, out, "Found 0 potential vulnerabilities.")
}

func Test_ScanPlatform(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.rs", "invoke(&ix, &accounts);\n")

	out, err := run(t, scanCommand, "--path", dir, "--platform", "near")
	require.NoError(t, err)
	assert.Contains(t, out, "No vulnerabilities found!")

	// unknown platforms scan for everything unless strict
	out, err = run(t, scanCommand, "--path", dir, "--platform", "ethereum")
	require.NoError(t, err)
	assert.Contains(t, out, "Unchecked Return Value")

	_, err = run(t, scanCommand, "--path", dir, "--platform", "ethereum", "--strict-platform")
	assert.Error(t, err)
}

func Test_ScanJSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.rs", "x += 1;\n")

	out, err := run(t, scanCommand, "--path", dir, "--format", "json", "--jobs", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Scanning")
	assert.Contains(t, out, `"total": 1`)
	assert.Contains(t, out, `"vulnerability": "Integer Overflow"`)
}

func Test_ScanUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.rs", "x += 1;\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.rs"), []byte{0xff}, 0o644))

	_, err := run(t, scanCommand, "--path", dir)
	require.Error(t, err)

	out, err := run(t, scanCommand, "--path", dir, "--keep-going")
	require.Error(t, err)
	assert.Contains(t, out, "Found 1 potential vulnerabilities.")
}

func Test_ScanPatternsFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.rs", "let v = data.unwrap();\n")
	patterns := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(patterns, []byte(
		"patterns:\n  - name: Unwrap Call\n    description: panics on error\n    regex: '\\.unwrap\\(\\)'\n    severity: low\n"), 0o644))

	out, err := run(t, scanCommand, "--path", dir, "--patterns", patterns)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Unwrap Call (LOW)")
}

func Test_ScanConfigExcludeDirs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/lib.rs", "x += 1;\n")
	writeSource(t, dir, "vendor/dep.rs", "x += 1;\n")
	writeSource(t, dir, "target/gen.rs", "x += 1;\n")
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("exclude_dirs: [vendor]\n"), 0o644))

	out, err := runWithConfig(t, cfg, scanCommand, "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "File: "+filepath.Join(dir, "src/lib.rs"))
	assert.NotContains(t, out, "vendor")
	assert.NotContains(t, out, "target")
	assert.Contains(t, out, "Found 1 potential vulnerabilities.")
}

func Test_ScanConfigPatternsFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.rs", "let v = data.unwrap();\n")
	cfgDir := t.TempDir()
	writeSource(t, cfgDir, "rules/extra.yaml",
		"patterns:\n  - name: Unwrap Call\n    regex: '\\.unwrap\\(\\)'\n    severity: info\n")
	cfg := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("patterns_file: rules/extra.yaml\n"), 0o644))

	out, err := runWithConfig(t, cfg, scanCommand, "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Unwrap Call (INFO)")
}

func Test_Checklist(t *testing.T) {
	out, err := run(t, checklistCommand, "--platform", "solana")
	require.NoError(t, err)
	assert.Contains(t, out, "Generating security checklist for solana...\n\n# Solana-Specific Security Checklist\n")

	path := filepath.Join(t.TempDir(), "checklist.md")
	out, err = run(t, checklistCommand, "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Checklist written to "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# General Rust Smart Contract Security Checklist")
}

func Test_Catalog(t *testing.T) {
	out, err := run(t, catalogCommand, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "  - storage: Storage management\n")

	out, err = run(t, catalogCommand, "flash", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "\nFlash Loan Vulnerability\n")
	assert.Contains(t, out, "Example Vulnerability:")

	_, err = run(t, catalogCommand, "nope")
	assert.EqualError(t, err, "unknown vulnerability type: nope")
}

func Test_Version(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	assert.Contains(t, buf.String(), "BuildVersion     dev\n")
}
