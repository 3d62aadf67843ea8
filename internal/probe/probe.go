// Package probe verifies that a loaded OpenSSL-compatible library exports
// the entry points the Bitmessage client needs and that the critical ones
// actually work.
//
// A probe runs five steps against a Library: version discovery, a symbol
// existence scan over the reference list, a secp256k1 key-construction
// smoke test, a RAND_bytes smoke test, and the compatibility verdict.
// Findings are reported incrementally through an Observer so rendering
// stays out of the decision logic.
package probe

import (
	"fmt"
	"log/slog"
	"slices"
)

const (
	// MissingSymbolTolerance is the default number of missing symbols a
	// library may have and still be judged compatible. It allows some
	// slack for non-critical symbols.
	MissingSymbolTolerance = 5

	// NIDSecp256k1 is the numeric identifier of the secp256k1 curve in
	// OpenSSL's curve-naming convention.
	NIDSecp256k1 = 714

	// versionSelector selects the library name/version string
	// (OPENSSL_VERSION / SSLEAY_VERSION).
	versionSelector = 0

	// randProbeLen is the number of random bytes requested by the
	// randomness smoke test.
	randProbeLen = 32

	// randSuccess is the status RAND_bytes returns on success.
	randSuccess = 1
)

// Synthetic missing-list entries recorded by the functional checks.
const (
	missingCurve     = "secp256k1_curve"
	missingCurveTest = "curve_test"
	missingRand      = "RAND_bytes"
)

// versionEntryPoints are the version-reporting entry points, tried in
// order: the OpenSSL 1.1+ name first, then the legacy 1.0 name.
var versionEntryPoints = []string{"OpenSSL_version", "SSLeay_version"}

// Result is the outcome of probing one library.
type Result struct {
	// VersionText is the library's reported version string, empty when no
	// version entry point resolved. Display only; it drives no decision.
	VersionText string
	// VersionEntry is the entry point that served VersionText.
	VersionEntry string

	// Found and Missing partition the reference list by resolvability.
	// Missing additionally carries synthetic entries recorded by failed
	// functional checks; the combined length feeds the verdict.
	Found   []string
	Missing []string

	// Total is the size of the reference list that was scanned.
	Total int

	// CurveOK reports that secp256k1 key construction worked.
	CurveOK bool
	// RandOK reports that RAND_bytes filled a buffer successfully.
	RandOK bool

	// Compatible is the verdict: len(Missing) stayed under the tolerance
	// and the probe ran to completion.
	Compatible bool

	// Err is set when the probe aborted on an unexpected failure.
	Err error

	synthetic map[string]bool
}

// MissingSymbols returns the reference symbols that did not resolve,
// excluding synthetic functional-check entries.
func (r *Result) MissingSymbols() []string {
	out := make([]string, 0, len(r.Missing))
	for _, name := range r.Missing {
		if !r.synthetic[name] {
			out = append(out, name)
		}
	}
	return out
}

// FailedChecks returns the synthetic entries recorded by failed functional
// checks.
func (r *Result) FailedChecks() []string {
	out := make([]string, 0, len(r.Missing))
	for _, name := range r.Missing {
		if r.synthetic[name] {
			out = append(out, name)
		}
	}
	return out
}

// addMissing records a missing entry once. Synthetic entries share the
// list with real symbol names so the verdict counts both.
func (r *Result) addMissing(name string, synthetic bool) {
	if slices.Contains(r.Missing, name) {
		return
	}
	r.Missing = append(r.Missing, name)
	if synthetic {
		if r.synthetic == nil {
			r.synthetic = make(map[string]bool)
		}
		r.synthetic[name] = true
	}
}

// Observer receives each intermediate finding as the probe progresses.
// Implementations must not influence the probe; internal/report renders
// them as the user-facing transcript.
type Observer interface {
	// Version reports a discovered version string and the entry point
	// that served it.
	Version(entry, text string)
	// VersionMissing reports that no version entry point resolved.
	VersionMissing()
	// Symbol reports one reference-list resolution outcome.
	Symbol(name string, found bool)
	// CurveSupport reports the secp256k1 smoke test outcome. err is
	// non-nil when the check itself failed rather than the curve being
	// unsupported.
	CurveSupport(supported bool, err error)
	// Randomness reports the RAND_bytes smoke test outcome.
	Randomness(ok bool, err error)
}

// NopObserver discards all findings.
type NopObserver struct{}

func (NopObserver) Version(string, string)   {}
func (NopObserver) VersionMissing()          {}
func (NopObserver) Symbol(string, bool)      {}
func (NopObserver) CurveSupport(bool, error) {}
func (NopObserver) Randomness(bool, error)   {}

// Prober runs compatibility probes against loaded libraries.
type Prober struct {
	// Tolerance is the missing-entry count at or above which a library is
	// judged not compatible.
	Tolerance int
	// Log receives diagnostics; the transcript goes through the Observer.
	Log *slog.Logger
}

// New returns a Prober with the default tolerance.
func New() *Prober {
	return &Prober{
		Tolerance: MissingSymbolTolerance,
		Log:       slog.Default(),
	}
}

// Probe checks lib against the reference symbol list and returns the
// structured result. It never panics: unexpected failures are contained
// and yield a not-compatible result with Err set.
func (p *Prober) Probe(lib Library, symbols []string, obs Observer) (result *Result) {
	if obs == nil {
		obs = NopObserver{}
	}
	result = &Result{Total: len(symbols)}

	defer func() {
		if rec := recover(); rec != nil {
			p.Log.Error("probe aborted unexpectedly", "panic", rec)
			result.Err = fmt.Errorf("probe: unexpected failure: %v", rec)
			result.Compatible = false
		}
	}()

	p.discoverVersion(lib, result, obs)
	p.scanSymbols(lib, symbols, result, obs)
	p.checkCurve(lib, result, obs)
	p.checkRandomness(lib, result, obs)

	result.Compatible = len(result.Missing) < p.Tolerance
	return result
}

// discoverVersion tries the version entry points in order and stops at the
// first that resolves. Absence is a diagnostic warning, not a failure.
func (p *Prober) discoverVersion(lib Library, r *Result, obs Observer) {
	for _, entry := range versionEntryPoints {
		text, err := lib.Version(entry, versionSelector)
		if err != nil {
			continue
		}
		r.VersionText = text
		r.VersionEntry = entry
		obs.Version(entry, text)
		return
	}
	p.Log.Warn("no version entry point resolved")
	obs.VersionMissing()
}

func (p *Prober) scanSymbols(lib Library, symbols []string, r *Result, obs Observer) {
	for _, name := range symbols {
		if err := lib.Symbol(name); err != nil {
			r.addMissing(name, false)
			obs.Symbol(name, false)
			continue
		}
		r.Found = append(r.Found, name)
		obs.Symbol(name, true)
	}
}

// checkCurve exercises EC_KEY_new_by_curve_name(NIDSecp256k1) and frees the
// key on success. This step never aborts the probe.
func (p *Prober) checkCurve(lib Library, r *Result, obs Observer) {
	key, err := lib.NewKeyByCurve(NIDSecp256k1)
	if err != nil {
		p.Log.Warn("curve check failed", "err", err)
		r.addMissing(missingCurveTest, true)
		obs.CurveSupport(false, err)
		return
	}
	if key == 0 {
		r.addMissing(missingCurve, true)
		obs.CurveSupport(false, nil)
		return
	}
	if err := lib.FreeKey(key); err != nil {
		p.Log.Warn("curve check failed", "err", err)
		r.addMissing(missingCurveTest, true)
		obs.CurveSupport(false, err)
		return
	}
	r.CurveOK = true
	obs.CurveSupport(true, nil)
}

// checkRandomness asks RAND_bytes for randProbeLen bytes and expects
// status 1. RAND_bytes is recorded as missing at most once even if it was
// already absent from the symbol scan.
func (p *Prober) checkRandomness(lib Library, r *Result, obs Observer) {
	buf := make([]byte, randProbeLen)
	status, err := lib.RandBytes(buf)
	if err != nil {
		p.Log.Warn("randomness check failed", "err", err)
		r.addMissing(missingRand, true)
		obs.Randomness(false, err)
		return
	}
	if status != randSuccess {
		r.addMissing(missingRand, true)
		obs.Randomness(false, nil)
		return
	}
	r.RandOK = true
	obs.Randomness(true, nil)
}
