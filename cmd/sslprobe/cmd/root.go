// Package cmd provides the CLI commands for sslprobe.
package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jon1enforce/sslprobe/internal/logging"
	"github.com/jon1enforce/sslprobe/internal/native"
	"github.com/jon1enforce/sslprobe/internal/probe"
	"github.com/jon1enforce/sslprobe/internal/report"
	"github.com/jon1enforce/sslprobe/internal/scanner"
	"github.com/jon1enforce/sslprobe/pkg/version"
)

// NewRootCmd creates the root command for the sslprobe CLI.
//
// The scan itself takes no arguments, flags, or environment variables:
// the candidate library paths and the reference symbol list are compiled
// in (see configs/probe.yaml).
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sslprobe",
		Short: "Probe OpenSSL/LibreSSL libraries for Bitmessage compatibility",
		Long: `sslprobe checks OpenSSL-compatible shared libraries (LibreSSL included)
for the entry points the Bitmessage client depends on.

It scans a fixed list of candidate library paths, resolves the reference
symbol list on each, smoke-tests secp256k1 key construction and RAND_bytes,
and reports which candidates are usable.

sslprobe is a reporting tool, not a gate: it always exits 0 after a
completed scan, regardless of verdicts.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("sslprobe version {{.Version}}\n")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// runScan wires the scanner against the embedded manifest and the platform
// dynamic loader, then runs the full scan.
func runScan(stdout, stderr io.Writer) error {
	logger := logging.New(stderr, "warn")

	manifest, err := probe.LoadManifest()
	if err != nil {
		return err
	}

	prober := probe.New()
	prober.Log = logger

	renderer := report.New(stdout)
	renderer.Intro()

	sc := scanner.New(manifest.Candidates, manifest.Symbols.Flatten(), openLibrary,
		scanner.WithProber(prober),
		scanner.WithReporter(renderer),
		scanner.WithLogger(logger),
	)
	sc.Scan()
	return nil
}

// openLibrary adapts internal/native to the scanner's Opener.
func openLibrary(path string) (probe.Library, error) {
	return native.Open(path)
}
