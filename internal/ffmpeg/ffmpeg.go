// Package ffmpeg is the boundary to the external media engine.
//
// The rest of the program depends on it for exactly three operations:
// probing a file's container/stream metadata, measuring loudness, and
// encoding. Each operation execs an external process; all parsing of
// engine output lives in pure functions so it can be tested against
// captured text without running anything.
package ffmpeg

import "os/exec"

const (
	ffmpegBin  = "ffmpeg"
	ffprobeBin = "ffprobe"
)

// Available checks if ffmpeg is installed and accessible.
func Available() bool {
	_, err := exec.LookPath(ffmpegBin)
	return err == nil
}

// ProbeAvailable checks if ffprobe is installed and accessible.
func ProbeAvailable() bool {
	_, err := exec.LookPath(ffprobeBin)
	return err == nil
}
