// Package scanner drives compatibility probes across the fixed, ordered
// list of candidate library paths and assembles the final report.
//
// Candidates are independent and processed strictly sequentially; no error
// on one candidate ever terminates the scan.
package scanner

import (
	"log/slog"
	"os"

	"github.com/jon1enforce/sslprobe/internal/probe"
)

// Opener loads a shared library by path. internal/native provides the real
// implementation; tests substitute fakes.
type Opener func(path string) (probe.Library, error)

// Reporter renders scan progress. It extends probe.Observer with the
// candidate-level events the scanner emits.
type Reporter interface {
	probe.Observer

	// BeginCandidate announces that path is about to be checked.
	BeginCandidate(path string)
	// MissingFile reports that path does not exist; no load was attempted.
	MissingFile(path string)
	// LoadFailed reports that path exists but could not be loaded.
	LoadFailed(path string, err error)
	// Loaded reports a successful load.
	Loaded(path string)
	// Summary renders the per-candidate probe summary and verdict.
	Summary(r *probe.Result)
	// FinalReport renders the compatible paths, or remediation guidance
	// when the list is empty.
	FinalReport(compatible []string)
}

// Candidate is the outcome for one scanned path.
type Candidate struct {
	Path string
	// Result is nil when the file was missing or failed to load.
	Result *probe.Result
	// Err holds the stat or load error for skipped candidates.
	Err error
	// Compatible is the candidate's verdict. Missing files and load
	// failures are implicitly not compatible.
	Compatible bool
}

// Report is the aggregate outcome of one scan.
type Report struct {
	Candidates []Candidate
	// Compatible lists the paths judged compatible, in scan order.
	Compatible []string
}

// Scanner checks candidate library paths one at a time.
type Scanner struct {
	candidates []string
	symbols    []string
	open       Opener
	prober     *probe.Prober
	reporter   Reporter
	log        *slog.Logger

	// stat is swapped in tests.
	stat func(path string) error
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProber sets the prober used for loaded candidates.
func WithProber(p *probe.Prober) Option {
	return func(s *Scanner) { s.prober = p }
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(s *Scanner) { s.reporter = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

// New creates a Scanner over the given candidate paths and reference
// symbol list.
func New(candidates, symbols []string, open Opener, opts ...Option) *Scanner {
	s := &Scanner{
		candidates: candidates,
		symbols:    symbols,
		open:       open,
		stat:       statPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prober == nil {
		s.prober = probe.New()
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Scan checks every candidate in order and returns the report. It always
// runs to completion and always emits the final report.
func (s *Scanner) Scan() *Report {
	rep := &Report{}
	for _, path := range s.candidates {
		c := s.scanCandidate(path)
		rep.Candidates = append(rep.Candidates, c)
		if c.Compatible {
			rep.Compatible = append(rep.Compatible, c.Path)
		}
	}
	s.reporter.FinalReport(rep.Compatible)
	return rep
}

func (s *Scanner) scanCandidate(path string) Candidate {
	s.reporter.BeginCandidate(path)

	if err := s.stat(path); err != nil {
		s.log.Debug("candidate not present", "path", path, "err", err)
		s.reporter.MissingFile(path)
		return Candidate{Path: path, Err: err}
	}

	lib, err := s.open(path)
	if err != nil {
		s.log.Warn("candidate failed to load", "path", path, "err", err)
		s.reporter.LoadFailed(path, err)
		return Candidate{Path: path, Err: err}
	}
	s.reporter.Loaded(path)

	result := s.prober.Probe(lib, s.symbols, s.reporter)
	s.reporter.Summary(result)
	return Candidate{Path: path, Result: result, Compatible: result.Compatible}
}

func statPath(path string) error {
	_, err := os.Stat(path)
	return err
}

// nopReporter discards all scan events.
type nopReporter struct {
	probe.NopObserver
}

func (nopReporter) BeginCandidate(string)    {}
func (nopReporter) MissingFile(string)       {}
func (nopReporter) LoadFailed(string, error) {}
func (nopReporter) Loaded(string)            {}
func (nopReporter) Summary(*probe.Result)    {}
func (nopReporter) FinalReport([]string)     {}
