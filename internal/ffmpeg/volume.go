package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
)

// Volume holds the mean and peak loudness of a file in dBFS, as
// measured by a full decode through the volumedetect filter.
type Volume struct {
	Mean float64
	Max  float64
}

// AnalysisError means the volumedetect pass itself failed: the engine
// exited abnormally before producing trustworthy readings.
type AnalysisError struct {
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("volume analysis %s: %v", e.Path, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// VolumeParseError means the volumedetect diagnostic output lacked the
// expected mean_volume/max_volume lines.
type VolumeParseError struct {
	Path string
	Err  error
}

func (e *VolumeParseError) Error() string {
	return fmt.Sprintf("parse volume output %s: %v", e.Path, e.Err)
}

func (e *VolumeParseError) Unwrap() error { return e.Err }

// volumeLine matches the volumedetect diagnostic lines, e.g.
// "[Parsed_volumedetect_0 @ 0x...] max_volume: -0.5 dB"
var volumeLine = regexp.MustCompile(`(mean|max)_volume:\s*(-?\d+(?:\.\d+)?)\s*dB`)

// DetectVolume decodes the entire file through the volumedetect filter,
// discarding the audio, and returns the measured loudness.
// This is boundary code - calls an external ffmpeg process. The process
// must exit normally before its diagnostic text is trusted.
func DetectVolume(ctx context.Context, path string) (Volume, error) {
	cmd := exec.CommandContext(ctx, ffmpegBin,
		"-hide_banner",
		"-i", path,
		"-af", "volumedetect",
		"-f", "null", "-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Volume{}, &AnalysisError{Path: path, Err: fmt.Errorf("%w: %s", err, lastLine(stderr.Bytes()))}
	}

	vol, err := ParseVolumeDetect(&stderr)
	if err != nil {
		return Volume{}, &VolumeParseError{Path: path, Err: err}
	}
	return vol, nil
}

// ParseVolumeDetect scans volumedetect diagnostic text for the first
// mean_volume and max_volume readings.
// This is a pure function: diagnostic text → Volume struct.
func ParseVolumeDetect(r io.Reader) (Volume, error) {
	var vol Volume
	var haveMean, haveMax bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := volumeLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		db, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		// Only the first occurrence of each reading counts
		switch m[1] {
		case "mean":
			if !haveMean {
				vol.Mean = db
				haveMean = true
			}
		case "max":
			if !haveMax {
				vol.Max = db
				haveMax = true
			}
		}

		if haveMean && haveMax {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Volume{}, err
	}

	switch {
	case !haveMean && !haveMax:
		return Volume{}, fmt.Errorf("no mean_volume or max_volume line in output")
	case !haveMean:
		return Volume{}, fmt.Errorf("no mean_volume line in output")
	case !haveMax:
		return Volume{}, fmt.Errorf("no max_volume line in output")
	}

	return vol, nil
}

// lastLine returns the last non-empty line of process output, for error
// messages.
func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
