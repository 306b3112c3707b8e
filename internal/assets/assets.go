// Package assets provides the archive bundled into the binaries.
//
// The sample is used as the default input when no archive is given on the
// command line, so both tools can demonstrate a full conversion out of the
// box.
package assets

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// SampleName is the file name the sample archive is materialized under.
const SampleName = "sample.mht"

//go:embed sample.mht
var sampleMHT []byte

// SampleMHT returns a copy of the embedded sample archive.
func SampleMHT() []byte {
	out := make([]byte, len(sampleMHT))
	copy(out, sampleMHT)
	return out
}

// WriteSample materializes the embedded sample archive into dir and returns
// the written path. The caller owns dir and its cleanup.
func WriteSample(dir string) (string, error) {
	path := filepath.Join(dir, SampleName)
	// #nosec G306 -- the sample archive is meant to be readable
	if err := os.WriteFile(path, sampleMHT, 0o644); err != nil {
		return "", fmt.Errorf("writing sample archive: %w", err)
	}
	return path, nil
}
