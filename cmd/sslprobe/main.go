// Package main provides the entry point for the sslprobe CLI.
package main

import (
	"os"

	"github.com/jon1enforce/sslprobe/cmd/sslprobe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
