package scanner

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon1enforce/sslprobe/internal/logging"
	"github.com/jon1enforce/sslprobe/internal/probe"
	"github.com/jon1enforce/sslprobe/internal/report"
)

// The renderer must satisfy the scanner's Reporter contract.
var _ Reporter = (*report.Renderer)(nil)

// stubLibrary is a loaded library where everything works except the
// symbols listed in missing.
type stubLibrary struct {
	missing map[string]bool
}

func (s stubLibrary) Symbol(name string) error {
	if s.missing[name] {
		return errors.New("symbol not found: " + name)
	}
	return nil
}

func (s stubLibrary) Version(string, int32) (string, error) { return "LibreSSL 2.5.0", nil }
func (s stubLibrary) NewKeyByCurve(int32) (uintptr, error)  { return 1, nil }
func (s stubLibrary) FreeKey(uintptr) error                 { return nil }
func (s stubLibrary) RandBytes([]byte) (int32, error)       { return 1, nil }

var _ probe.Library = stubLibrary{}

var testSymbols = []string{"SSL_new", "RAND_bytes", "HMAC", "ECDH_compute_key", "EC_POINT_new", "EVP_sha1"}

// testEnv builds a scanner where present holds the paths that exist on the
// fake filesystem and libs maps loadable paths to their stub. Paths present
// but absent from libs fail to load.
type testEnv struct {
	present map[string]bool
	libs    map[string]probe.Library
	opened  []string
}

func (e *testEnv) open(path string) (probe.Library, error) {
	e.opened = append(e.opened, path)
	lib, ok := e.libs[path]
	if !ok {
		return nil, errors.New("invalid ELF header")
	}
	return lib, nil
}

func (e *testEnv) scanner(candidates []string, opts ...Option) *Scanner {
	p := probe.New()
	p.Log = logging.Discard()
	opts = append([]Option{WithProber(p), WithLogger(logging.Discard())}, opts...)
	s := New(candidates, testSymbols, e.open, opts...)
	s.stat = func(path string) error {
		if e.present[path] {
			return nil
		}
		return os.ErrNotExist
	}
	return s
}

func TestScan_MissingFileSkipsLoad(t *testing.T) {
	env := &testEnv{present: map[string]bool{}}
	s := env.scanner([]string{"/usr/lib/libssl.so"})

	rep := s.Scan()

	assert.Empty(t, env.opened, "nonexistent path must not be dlopen'd")
	assert.Empty(t, rep.Compatible)
	require.Len(t, rep.Candidates, 1)
	assert.Error(t, rep.Candidates[0].Err)
	assert.False(t, rep.Candidates[0].Compatible)
	assert.Nil(t, rep.Candidates[0].Result)
}

func TestScan_LoadFailureIsContained(t *testing.T) {
	env := &testEnv{
		present: map[string]bool{"/usr/lib/libssl.so": true, "/usr/lib/libcrypto.so": true},
		libs:    map[string]probe.Library{"/usr/lib/libcrypto.so": stubLibrary{}},
	}
	s := env.scanner([]string{"/usr/lib/libssl.so", "/usr/lib/libcrypto.so"})

	rep := s.Scan()

	require.Len(t, rep.Candidates, 2)
	assert.Error(t, rep.Candidates[0].Err)
	assert.False(t, rep.Candidates[0].Compatible)
	assert.True(t, rep.Candidates[1].Compatible, "scan must continue past a load failure")
	assert.Equal(t, []string{"/usr/lib/libcrypto.so"}, rep.Compatible)
}

func TestScan_SingleLoadableAmongMissing(t *testing.T) {
	candidates := []string{
		"/home/libressl-2.5.0/build/ssl/libssl.so",
		"/home/libressl-2.5.0/build/crypto/libcrypto.so",
		"/usr/lib/libssl.so",
		"/usr/lib/libcrypto.so",
		"/usr/local/lib/libssl.so",
		"/usr/local/lib/libcrypto.so",
		"/usr/lib/libssl.so.26.0",
		"/usr/lib/libcrypto.so.26.0",
		"/usr/lib/libssl.so.25.0",
		"/usr/lib/libcrypto.so.25.0",
	}
	env := &testEnv{
		present: map[string]bool{"/usr/local/lib/libcrypto.so": true},
		libs:    map[string]probe.Library{"/usr/local/lib/libcrypto.so": stubLibrary{}},
	}
	s := env.scanner(candidates)

	rep := s.Scan()

	assert.Equal(t, []string{"/usr/local/lib/libcrypto.so"}, rep.Compatible)
	assert.Equal(t, []string{"/usr/local/lib/libcrypto.so"}, env.opened)
	assert.Len(t, rep.Candidates, len(candidates))
}

func TestScan_CompatibleKeepsCandidateOrder(t *testing.T) {
	candidates := []string{"/a.so", "/b.so", "/c.so"}
	env := &testEnv{
		present: map[string]bool{"/a.so": true, "/b.so": true, "/c.so": true},
		libs: map[string]probe.Library{
			"/a.so": stubLibrary{},
			// /b.so resolves too few symbols to pass the threshold.
			"/b.so": stubLibrary{missing: map[string]bool{
				"SSL_new": true, "RAND_bytes": true, "HMAC": true,
				"ECDH_compute_key": true, "EC_POINT_new": true,
			}},
			"/c.so": stubLibrary{},
		},
	}
	s := env.scanner(candidates)

	rep := s.Scan()

	assert.Equal(t, []string{"/a.so", "/c.so"}, rep.Compatible)
}

func TestScan_Idempotent(t *testing.T) {
	env := &testEnv{
		present: map[string]bool{"/a.so": true},
		libs:    map[string]probe.Library{"/a.so": stubLibrary{missing: map[string]bool{"HMAC": true}}},
	}
	s := env.scanner([]string{"/a.so", "/b.so"})

	first := s.Scan()
	second := s.Scan()

	assert.Equal(t, first.Compatible, second.Compatible)
	require.Len(t, second.Candidates, 2)
	assert.Equal(t, first.Candidates[0].Compatible, second.Candidates[0].Compatible)
}

// recordingReporter captures candidate-level events.
type recordingReporter struct {
	probe.NopObserver
	began   []string
	missing []string
	failed  []string
	loaded  []string
	summary int
	final   [][]string
}

func (r *recordingReporter) BeginCandidate(path string) { r.began = append(r.began, path) }
func (r *recordingReporter) MissingFile(path string)    { r.missing = append(r.missing, path) }
func (r *recordingReporter) LoadFailed(path string, _ error) {
	r.failed = append(r.failed, path)
}
func (r *recordingReporter) Loaded(path string)    { r.loaded = append(r.loaded, path) }
func (r *recordingReporter) Summary(*probe.Result) { r.summary++ }
func (r *recordingReporter) FinalReport(compatible []string) {
	r.final = append(r.final, compatible)
}

func TestScan_ReporterSeesEveryCandidate(t *testing.T) {
	env := &testEnv{
		present: map[string]bool{"/a.so": true, "/bad.so": true},
		libs:    map[string]probe.Library{"/a.so": stubLibrary{}},
	}
	rec := &recordingReporter{}
	s := env.scanner([]string{"/gone.so", "/bad.so", "/a.so"}, WithReporter(rec))

	rep := s.Scan()

	assert.Equal(t, []string{"/gone.so", "/bad.so", "/a.so"}, rec.began)
	assert.Equal(t, []string{"/gone.so"}, rec.missing)
	assert.Equal(t, []string{"/bad.so"}, rec.failed)
	assert.Equal(t, []string{"/a.so"}, rec.loaded)
	assert.Equal(t, 1, rec.summary, "one summary per probed candidate")
	require.Len(t, rec.final, 1)
	assert.Equal(t, rep.Compatible, rec.final[0])
}

func TestScan_DefaultsWork(t *testing.T) {
	// No reporter, prober, or logger configured.
	env := &testEnv{present: map[string]bool{}}
	s := New([]string{"/gone.so"}, testSymbols, env.open)
	s.stat = func(string) error { return os.ErrNotExist }

	rep := s.Scan()
	assert.Empty(t, rep.Compatible)
}
