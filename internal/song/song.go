package song

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	dhowden "github.com/dhowden/tag"

	"github.com/binaryphile/cdj-prep/internal/ffmpeg"
)

// Song is the analyzed descriptor of one audio file. It is built once
// when the file is discovered and read-only afterwards.
//
// Exactly one of bit depth and bit rate is populated, determined by the
// format family: lossless formats carry a depth, lossy ones a rate.
type Song struct {
	path string
	name string

	format Format
	codec  string

	sampleRate int
	bitDepth   int // lossless only
	bitRate    int // lossy only

	tags   map[string]string
	volume ffmpeg.Volume
}

// UnsupportedFormatError means the probe succeeded but the container is
// not one this tool converts.
type UnsupportedFormatError struct {
	Path       string
	FormatName string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format %q", e.Path, e.FormatName)
}

// New probes and analyzes the file at path and returns its descriptor.
// The display name is the file name without its extension.
//
// Construction runs two external passes: a metadata probe, then a full
// decode through the loudness filter. The loudness readings are taken
// once here and never recomputed.
func New(ctx context.Context, path string) (*Song, error) {
	base := filepath.Base(path)
	return NewNamed(ctx, path, strings.TrimSuffix(base, filepath.Ext(base)))
}

// NewNamed is New with an explicit display name.
func NewNamed(ctx context.Context, path, name string) (*Song, error) {
	probe, err := ffmpeg.ProbeFile(ctx, path)
	if err != nil {
		return nil, err
	}

	vol, err := ffmpeg.DetectVolume(ctx, path)
	if err != nil {
		return nil, err
	}

	return FromProbe(path, name, probe, vol)
}

// FromProbe builds the descriptor from already-parsed probe data and
// loudness readings, with no external processes involved.
func FromProbe(path, name string, probe ffmpeg.Probe, vol ffmpeg.Volume) (*Song, error) {
	format, ok := ParseFormat(probe.Format.FormatName)
	if !ok {
		return nil, &UnsupportedFormatError{Path: path, FormatName: probe.Format.FormatName}
	}

	stream := probe.AudioStream()

	rate, ok := stream.SampleRateHz()
	if !ok {
		return nil, fmt.Errorf("%s: probe reported no sample rate", path)
	}

	s := &Song{
		path:       path,
		name:       name,
		format:     format,
		codec:      stream.CodecName,
		sampleRate: rate,
		tags:       probe.Format.Tags,
		volume:     vol,
	}

	switch {
	case format.Lossless():
		depth, ok := stream.BitDepth()
		if !ok {
			return nil, fmt.Errorf("%s: probe reported no bit depth for lossless stream", path)
		}
		s.bitDepth = depth
	default:
		bitRate, ok := stream.BitRateBPS()
		if !ok {
			return nil, fmt.Errorf("%s: probe reported no bit rate for lossy stream", path)
		}
		s.bitRate = bitRate
	}

	if len(s.tags) == 0 {
		s.tags = readNativeTags(path)
	}

	return s, nil
}

// readNativeTags reads container tags directly from the file, for
// containers where ffprobe surfaces nothing at the format level.
// Failures just mean no tags.
func readNativeTags(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	meta, err := dhowden.ReadFrom(f)
	if err != nil {
		return nil
	}

	tags := make(map[string]string)
	for key, value := range meta.Raw() {
		if str, ok := value.(string); ok {
			tags[key] = str
		}
	}
	return tags
}

// Path returns the source file path.
func (s *Song) Path() string { return s.path }

// Name returns the display name (file name without extension). It
// becomes the base name of the converted output.
func (s *Song) Name() string { return s.name }

// Format returns the container format.
func (s *Song) Format() Format { return s.format }

// Codec returns the stream codec name as reported by the probe.
func (s *Song) Codec() string { return s.codec }

// SampleRate returns the sample rate in Hz.
func (s *Song) SampleRate() int { return s.sampleRate }

// BitDepth returns the bit depth. It is only present for lossless
// formats.
func (s *Song) BitDepth() (int, bool) {
	return s.bitDepth, s.format.Lossless()
}

// BitRate returns the bit rate in bps. It is only present for lossy
// formats.
func (s *Song) BitRate() (int, bool) {
	return s.bitRate, s.format.Lossy()
}

// MeanVolume returns the measured mean loudness in dBFS.
func (s *Song) MeanVolume() float64 { return s.volume.Mean }

// MaxVolume returns the measured peak loudness in dBFS.
func (s *Song) MaxVolume() float64 { return s.volume.Max }

// Tags returns a copy of the container tag mapping.
func (s *Song) Tags() map[string]string {
	return maps.Clone(s.tags)
}

// Tag looks up one tag by name with an explicit presence check.
func (s *Song) Tag(name string) (string, bool) {
	value, ok := s.tags[name]
	return value, ok
}

// HasTag reports whether the song carries the named tag.
func (s *Song) HasTag(name string) bool {
	_, ok := s.tags[name]
	return ok
}
