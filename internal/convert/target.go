// Package convert decides whether a song needs conversion and drives
// the encode that produces the output file.
package convert

import (
	"github.com/binaryphile/cdj-prep/internal/profile"
	"github.com/binaryphile/cdj-prep/internal/song"
)

// Target holds the computed output parameters for one conversion.
// It is derived fresh for each song at conversion time, never cached.
type Target struct {
	Format     song.Format // output container, aiff or mp3
	Codec      string      // pcm_s16le or mp3
	SampleRate int         // Hz

	BitDepth int // lossless outputs only
	BitRate  int // bps, lossy outputs only

	// VolumeOffsetDB is the gain that moves the measured peak to the
	// profile's target peak. May be negative.
	VolumeOffsetDB float64
}

// Plan applies the skip test and, when conversion is needed, computes
// the target parameters. This is a pure decision: no I/O.
//
// A false second return means the song already satisfies the profile
// and no output should be produced.
func Plan(s *song.Song, prof profile.Profile) (Target, bool) {
	if compliant(s, prof) {
		return Target{}, false
	}

	t := Target{
		// Outputs clamp down to the profile ceiling, never up: this is
		// a compatibility pass, not a quality-enhancement pass.
		SampleRate:     min(s.SampleRate(), prof.MaxSampleRate),
		VolumeOffsetDB: prof.PeakDB - s.MaxVolume(),
	}

	if s.Format().Lossless() {
		depth, _ := s.BitDepth()
		t.Format = song.FormatAIFF
		t.Codec = "pcm_s16le"
		t.BitDepth = min(depth, prof.MaxBitDepth)
	} else {
		bitRate, _ := s.BitRate()
		t.Format = song.FormatMP3
		t.Codec = "mp3"
		t.BitRate = min(bitRate, prof.MaxBitRate)
	}

	return t, true
}

// compliant is the skip test. A song needs no conversion only when its
// sample rate is at or under the ceiling, its peak sits exactly at the
// target level (an equality test, not a tolerance), and its container
// is one the target hardware plays, within that family's quality
// ceiling.
func compliant(s *song.Song, prof profile.Profile) bool {
	if s.SampleRate() > prof.MaxSampleRate {
		return false
	}
	if s.MaxVolume() != prof.PeakDB {
		return false
	}
	if !prof.Compliant(s.Format()) {
		return false
	}

	if depth, ok := s.BitDepth(); ok {
		return depth <= prof.MaxBitDepth
	}
	if bitRate, ok := s.BitRate(); ok {
		return bitRate <= prof.MaxBitRate
	}
	return false
}
