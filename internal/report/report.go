// Package report renders probe findings as the line-oriented transcript
// the user sees. It implements scanner.Reporter (and with it
// probe.Observer); all decision logic lives in internal/probe and
// internal/scanner, the renderer only formats.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/jon1enforce/sslprobe/internal/probe"
)

// Visual pass/fail markers, kept in sync with the transcript the
// Bitmessage tooling expects.
const (
	markPass = "✓"
	markFail = "✗"
)

// maxMissingShown caps the per-candidate missing-function listing.
const maxMissingShown = 10

// Renderer writes the human-readable transcript.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// New creates a Renderer. Color is enabled only when out is a terminal.
func New(out io.Writer) *Renderer {
	styles := NoColorStyles()
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		styles = DefaultStyles()
	}
	return &Renderer{out: out, styles: styles}
}

// Intro prints the scan banner.
func (r *Renderer) Intro() {
	r.line(r.styles.Header.Render("Testing LibreSSL compatibility for Bitmessage"))
}

// BeginCandidate prints the per-candidate header.
func (r *Renderer) BeginCandidate(path string) {
	r.line("")
	r.line(r.styles.Header.Render(fmt.Sprintf("=== Testing LibreSSL library: %s ===", path)))
}

// MissingFile reports a candidate path that does not exist.
func (r *Renderer) MissingFile(path string) {
	r.fail("Library not found: %s", path)
}

// LoadFailed reports a candidate that exists but could not be loaded.
func (r *Renderer) LoadFailed(path string, err error) {
	r.fail("Failed to load or test library: %v", err)
}

// Loaded reports a successful load.
func (r *Renderer) Loaded(string) {
	r.pass("Library loaded successfully")
}

// Version reports the discovered version string.
func (r *Renderer) Version(entry, text string) {
	r.pass("%s function found", entry)
	r.line("Library version: " + text)
}

// VersionMissing warns that no version entry point resolved.
func (r *Renderer) VersionMissing() {
	r.line(r.styles.Warn.Render(markFail) + " No version function found")
}

// Symbol reports one reference-symbol outcome.
func (r *Renderer) Symbol(name string, found bool) {
	if found {
		r.pass("%s found", name)
	} else {
		r.fail("%s missing", name)
	}
}

// CurveSupport reports the secp256k1 smoke test outcome.
func (r *Renderer) CurveSupport(supported bool, err error) {
	switch {
	case supported:
		r.pass("secp256k1 curve support available")
	case err != nil:
		r.fail("Curve test failed: %v", err)
	default:
		r.fail("secp256k1 curve not supported")
	}
}

// Randomness reports the RAND_bytes smoke test outcome.
func (r *Renderer) Randomness(ok bool, err error) {
	switch {
	case ok:
		r.pass("RAND_bytes works correctly")
	case err != nil:
		r.fail("RAND_bytes test failed: %v", err)
	default:
		r.fail("RAND_bytes failed")
	}
}

// Summary prints the per-candidate summary block and verdict.
func (r *Renderer) Summary(res *probe.Result) {
	r.line("")
	r.line(r.styles.Header.Render("=== SUMMARY ==="))
	r.line(fmt.Sprintf("Available functions: %d/%d", len(res.Found), res.Total))
	r.line(fmt.Sprintf("Missing functions: %d", len(res.Missing)))

	if len(res.Missing) > 0 {
		r.line("Missing critical functions:")
		shown := res.Missing
		if len(shown) > maxMissingShown {
			shown = shown[:maxMissingShown]
		}
		for _, name := range shown {
			r.line(r.styles.Dim.Render("  - " + name))
		}
		if extra := len(res.Missing) - maxMissingShown; extra > 0 {
			r.line(r.styles.Dim.Render(fmt.Sprintf("  ... and %d more", extra)))
		}
	}

	if res.Err != nil {
		r.fail("Failed to load or test library: %v", res.Err)
		return
	}
	if res.Compatible {
		r.pass("Library appears to be compatible with Bitmessage")
	} else {
		r.fail("Library may not be fully compatible with Bitmessage")
	}
}

// FinalReport prints the compatible paths, or remediation guidance when
// nothing passed.
func (r *Renderer) FinalReport(compatible []string) {
	r.line("")
	r.line(r.styles.Header.Render("=== FINAL RESULTS ==="))
	if len(compatible) > 0 {
		r.line("Compatible libraries found:")
		for _, path := range compatible {
			r.line("  " + r.styles.Pass.Render(markPass) + " " + path)
		}
		return
	}
	r.line(r.styles.Fail.Render("No compatible libraries found!"))
	r.line("You may need to:")
	r.line("  1. Install LibreSSL: pkg_add libressl")
	r.line("  2. Compile a compatible version of LibreSSL")
	r.line("  3. Check library paths and permissions")
}

func (r *Renderer) line(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

func (r *Renderer) pass(format string, args ...any) {
	r.line(r.styles.Pass.Render(markPass) + " " + fmt.Sprintf(format, args...))
}

func (r *Renderer) fail(format string, args ...any) {
	r.line(r.styles.Fail.Render(markFail) + " " + fmt.Sprintf(format, args...))
}
