// Package profile defines the target compatibility profile: the
// quality ceilings and peak level the converter aims for. The default
// is the Pioneer CDJ profile; a JSON file can override it so a target
// change touches configuration, not code.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/binaryphile/fluentfp/slice"

	"github.com/binaryphile/cdj-prep/internal/song"
)

// Profile is the target constraint set.
type Profile struct {
	MaxSampleRate int     // Hz
	MaxBitDepth   int     // lossless ceiling
	MaxBitRate    int     // bps, lossy ceiling
	PeakDB        float64 // target peak loudness in dBFS

	// CompliantFormats are the containers the target hardware plays
	// natively. Files in any other container always convert, whatever
	// their quality.
	CompliantFormats []string
}

// Default returns the CDJ compatibility profile.
func Default() Profile {
	return Profile{
		MaxSampleRate:    44100,
		MaxBitDepth:      16,
		MaxBitRate:       320000,
		PeakDB:           -0.5,
		CompliantFormats: []string{"aiff", "wav", "mp3", "aac"},
	}
}

// fileProfile mirrors the JSON schema. Pointer fields distinguish
// "absent, keep the default" from an explicit zero.
type fileProfile struct {
	MaxSampleRate    *int     `json:"maxSampleRate"`
	MaxBitDepth      *int     `json:"maxBitDepth"`
	MaxBitRate       *int     `json:"maxBitRate"`
	PeakDB           *float64 `json:"peakDB"`
	CompliantFormats []string `json:"compliantFormats"`
}

// Load reads a JSON profile file, applying the default for any field
// the file omits.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var fp fileProfile
	if err := json.Unmarshal(data, &fp); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}

	p := Default()
	if fp.MaxSampleRate != nil {
		p.MaxSampleRate = *fp.MaxSampleRate
	}
	if fp.MaxBitDepth != nil {
		p.MaxBitDepth = *fp.MaxBitDepth
	}
	if fp.MaxBitRate != nil {
		p.MaxBitRate = *fp.MaxBitRate
	}
	if fp.PeakDB != nil {
		p.PeakDB = *fp.PeakDB
	}
	if fp.CompliantFormats != nil {
		p.CompliantFormats = fp.CompliantFormats
	}

	if errs := p.Validate(); len(errs) > 0 {
		return Profile{}, fmt.Errorf("profile %s: %w", path, errors.Join(errs...))
	}

	return p, nil
}

// Validate checks the profile's fields and returns any validation
// errors.
func (p Profile) Validate() []error {
	var errs []error

	if p.MaxSampleRate <= 0 {
		errs = append(errs, fmt.Errorf("maxSampleRate must be positive, got %d", p.MaxSampleRate))
	}
	if p.MaxBitDepth <= 0 {
		errs = append(errs, fmt.Errorf("maxBitDepth must be positive, got %d", p.MaxBitDepth))
	}
	if p.MaxBitRate <= 0 {
		errs = append(errs, fmt.Errorf("maxBitRate must be positive, got %d", p.MaxBitRate))
	}
	if p.PeakDB > 0 {
		errs = append(errs, fmt.Errorf("peakDB above full scale: %v", p.PeakDB))
	}
	for _, name := range p.CompliantFormats {
		if _, ok := song.ParseFormat(name); !ok {
			errs = append(errs, fmt.Errorf("unknown compliant format %q", name))
		}
	}

	return errs
}

// Compliant reports whether the container format is playable by the
// target hardware without conversion.
func (p Profile) Compliant(f song.Format) bool {
	// slice.MapTo[R](input).To(fn) maps []string → []song.Format
	formats := slice.MapTo[song.Format](p.CompliantFormats).To(func(name string) song.Format {
		parsed, _ := song.ParseFormat(name)
		return parsed
	})

	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}
