package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/binaryphile/cdj-prep/internal/ffmpeg"
	"github.com/binaryphile/cdj-prep/internal/profile"
	"github.com/binaryphile/cdj-prep/internal/song"
)

// MarkerTags are written into every converted file so a later pass
// recognizes it as already converted.
var MarkerTags = []string{
	"REKORDBOX_READY=1",
	"CONVERT_FOR_REKORDBOX=0",
}

// Options configure conversion execution.
type Options struct {
	Profile    profile.Profile
	ASCIINames bool // sanitize output basenames for shell safety
	DryRun     bool // decide and report, write nothing
	Verbose    bool // pass engine output through
	Log        io.Writer
}

// Outcome reports what Convert did with a song.
type Outcome int

const (
	Skipped   Outcome = iota // already satisfied the profile
	Converted                // output file written
	Planned                  // dry run, conversion would happen
	Failed                   // conversion attempted and failed
)

// Convert applies the conversion decision to one song and, when
// needed, produces the converted file in outDir. An existing file at
// the output path is overwritten unconditionally.
func Convert(ctx context.Context, s *song.Song, outDir string, opts Options) (Outcome, error) {
	logw := opts.Log
	if logw == nil {
		logw = os.Stdout
	}

	target, needed := Plan(s, opts.Profile)
	if !needed {
		fmt.Fprintf(logw, "'%s' does not need to be converted.\n", s.Name())
		return Skipped, nil
	}

	outPath := OutputPath(outDir, s.Name(), target.Format, opts.ASCIINames)

	if opts.DryRun {
		fmt.Fprintf(logw, "Would convert '%s' -> %s\n", s.Name(), outPath)
		return Planned, nil
	}

	fmt.Fprintf(logw, "Converting '%s'\n", s.Name())

	if err := ffmpeg.Encode(ctx, encodeJob(s, target, outPath, opts.Verbose)); err != nil {
		return Failed, err
	}

	// ffmpeg wrote the markers as container metadata; for mp3 outputs
	// stamp them again as ID3v2.4 TXXX frames so they survive tools
	// that rewrite the comment fields.
	if target.Format == song.FormatMP3 {
		if err := stampMarkers(outPath); err != nil {
			return Failed, fmt.Errorf("mark output %s: %w", outPath, err)
		}
	}

	return Converted, nil
}

// encodeJob translates a planned target into the engine invocation.
// This is a pure function: (song, target, path) → Job.
func encodeJob(s *song.Song, t Target, outPath string, verbose bool) ffmpeg.Job {
	j := ffmpeg.Job{
		InputPath:      s.Path(),
		OutputPath:     outPath,
		Codec:          t.Codec,
		Format:         t.Format.String(),
		SampleRate:     t.SampleRate,
		VolumeOffsetDB: t.VolumeOffsetDB,
		Metadata:       MarkerTags,
		Verbose:        verbose,
	}

	if t.Format == song.FormatAIFF {
		j.SampleFmt = fmt.Sprintf("s%d", t.BitDepth)
	} else {
		j.BitRate = t.BitRate
	}

	return j
}

// OutputPath builds the destination path for a converted song:
// outDir/<name>.<format extension>.
func OutputPath(outDir, name string, f song.Format, asciiNames bool) string {
	if asciiNames {
		name = SanitizeName(name)
	}
	return filepath.Join(outDir, name+"."+f.String())
}
