// Package configs provides the embedded probe manifest for sslprobe.
//
// The manifest is embedded at build time using Go's //go:embed directive so
// the binary carries its reference data in all distributions (go install,
// binary releases). There is no runtime configuration: the symbol reference
// list and the candidate library paths are fixed for a given build.
//
// To change the probed symbols or candidate paths, edit probe.yaml and
// rebuild. internal/probe parses the manifest (see probe.LoadManifest).
package configs

import _ "embed"

// ProbeManifest is the YAML manifest listing the reference symbols the
// Bitmessage client needs and the candidate library paths to scan, in scan
// order.
//
//go:embed probe.yaml
var ProbeManifest string
