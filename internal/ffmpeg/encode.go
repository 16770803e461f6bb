package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Job describes one encode invocation: source, destination, and the
// codec/rate/loudness options to apply.
type Job struct {
	InputPath  string
	OutputPath string

	Codec      string // output codec, e.g. "pcm_s16le" or "mp3"
	Format     string // output container, e.g. "aiff" or "mp3"
	SampleRate int    // Hz

	SampleFmt string // sample format for lossless outputs ("s16"), empty otherwise
	BitRate   int    // bps for lossy outputs, zero otherwise

	// VolumeOffsetDB is the gain applied via the volume filter.
	// Zero means the raw decoded stream is used with no filter.
	VolumeOffsetDB float64

	// Metadata entries are KEY=VALUE pairs written into the output.
	Metadata []string

	Verbose bool // pass engine output through to the terminal
}

// Args builds the ffmpeg argument list for the job.
// This is a pure function: Job → argument slice.
func (j Job) Args() []string {
	args := []string{
		"-y", // overwrite the output unconditionally
		"-i", j.InputPath,
	}

	if j.VolumeOffsetDB != 0 {
		args = append(args, "-af", fmt.Sprintf("volume=%gdB", j.VolumeOffsetDB))
	}

	args = append(args,
		"-acodec", j.Codec,
		"-f", j.Format,
		"-ar", strconv.Itoa(j.SampleRate),
		"-write_id3v2", "1",
	)

	for _, m := range j.Metadata {
		args = append(args, "-metadata", m)
	}

	if j.SampleFmt != "" {
		args = append(args, "-sample_fmt", j.SampleFmt)
	}
	if j.BitRate > 0 {
		args = append(args, "-b:a", strconv.Itoa(j.BitRate))
	}

	return append(args, j.OutputPath)
}

// EncodeError means the external encode process failed or exited
// abnormally. It names both the input and the attempted output so the
// batch log identifies the offending file.
type EncodeError struct {
	InputPath  string
	OutputPath string
	Err        error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s -> %s: %v", e.InputPath, e.OutputPath, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Encode runs the job to completion.
// This is boundary code - calls an external ffmpeg process.
//
// A failed or interrupted encode can leave a partial output file at
// Job.OutputPath; it is left in place rather than removed.
func Encode(ctx context.Context, j Job) error {
	if _, err := os.Stat(j.InputPath); err != nil {
		return &EncodeError{InputPath: j.InputPath, OutputPath: j.OutputPath, Err: err}
	}

	cmd := exec.CommandContext(ctx, ffmpegBin, j.Args()...)

	var stderr bytes.Buffer
	if j.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if !j.Verbose {
			err = fmt.Errorf("%w: %s", err, lastLine(stderr.Bytes()))
		}
		return &EncodeError{InputPath: j.InputPath, OutputPath: j.OutputPath, Err: err}
	}

	// Verify output was created
	info, err := os.Stat(j.OutputPath)
	if err != nil {
		return &EncodeError{InputPath: j.InputPath, OutputPath: j.OutputPath, Err: fmt.Errorf("output not created: %w", err)}
	}
	if info.Size() == 0 {
		return &EncodeError{InputPath: j.InputPath, OutputPath: j.OutputPath, Err: fmt.Errorf("output file is empty")}
	}

	return nil
}
