package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe holds the container and stream metadata reported by ffprobe.
type Probe struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream is one stream from a probe. ffprobe codes numeric fields as
// strings; accessors below parse them.
type Stream struct {
	CodecName        string `json:"codec_name"`
	CodecType        string `json:"codec_type"`
	SampleRate       string `json:"sample_rate"`
	SampleFmt        string `json:"sample_fmt"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
	BitsPerSample    int    `json:"bits_per_sample"`
	BitRate          string `json:"bit_rate"`
}

// Format is the container-level section of a probe.
type Format struct {
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// ProbeError means the engine could not parse a candidate file
// (corrupt, unsupported codec). Callers should log it and move on to
// the next file rather than abort the batch.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ProbeFile runs ffprobe on path and returns the parsed result.
// This is boundary code - calls an external ffprobe process.
func ProbeFile(ctx context.Context, path string) (Probe, error) {
	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return Probe{}, &ProbeError{Path: path, Err: err}
	}

	probe, err := ParseProbe(out)
	if err != nil {
		return Probe{}, &ProbeError{Path: path, Err: err}
	}
	return probe, nil
}

// ParseProbe parses ffprobe JSON output.
// This is a pure function: raw JSON bytes → Probe struct.
func ParseProbe(data []byte) (Probe, error) {
	var probe Probe
	if err := json.Unmarshal(data, &probe); err != nil {
		return Probe{}, fmt.Errorf("parse probe output: %w", err)
	}
	if len(probe.Streams) == 0 || probe.Format.FormatName == "" {
		return Probe{}, errors.New("missing streams or format")
	}
	return probe, nil
}

// AudioStream returns the first audio stream of the probe, falling
// back to stream 0 when ffprobe did not label stream types.
func (p Probe) AudioStream() Stream {
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			return s
		}
	}
	return p.Streams[0]
}

// SampleRateHz parses the stream's sample rate.
func (s Stream) SampleRateHz() (int, bool) {
	n, err := strconv.Atoi(s.SampleRate)
	return n, err == nil && n > 0
}

// BitRateBPS parses the stream's bit rate. Only lossy streams carry one.
func (s Stream) BitRateBPS() (int, bool) {
	n, err := strconv.Atoi(s.BitRate)
	return n, err == nil && n > 0
}

// BitDepth returns the stream's bit depth. Only lossless streams carry
// one. It prefers bits_per_raw_sample, then the PCM bits_per_sample
// field, then the digits of the sample format ("s16" → 16, "s32p" → 32).
func (s Stream) BitDepth() (int, bool) {
	if n, err := strconv.Atoi(s.BitsPerRawSample); err == nil && n > 0 {
		return n, true
	}
	if s.BitsPerSample > 0 {
		return s.BitsPerSample, true
	}
	if n, ok := sampleFmtDepth(s.SampleFmt); ok {
		return n, true
	}
	return 0, false
}

// sampleFmtDepth extracts the digit run from a sample format name.
// Float formats ("flt", "fltp") have no digits and report no depth.
func sampleFmtDepth(fmtName string) (int, bool) {
	start := strings.IndexFunc(fmtName, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(fmtName) && isDigit(rune(fmtName[end])) {
		end++
	}
	n, err := strconv.Atoi(fmtName[start:end])
	return n, err == nil && n > 0
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
