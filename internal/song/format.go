// Package song wraps a single audio file and its analyzed properties:
// container format, codec, quality, tags, and loudness.
package song

import "strings"

// Format identifies a supported audio container.
type Format int

const (
	FormatUnknown Format = iota
	FormatAIFF
	FormatFLAC
	FormatWAV
	FormatMP3
	FormatOGG
	FormatAAC
)

var formatNames = map[Format]string{
	FormatAIFF: "aiff",
	FormatFLAC: "flac",
	FormatWAV:  "wav",
	FormatMP3:  "mp3",
	FormatOGG:  "ogg",
	FormatAAC:  "aac",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat maps an ffprobe format_name to a Format. ffprobe reports
// some containers as comma-separated alias lists; the first recognized
// alias wins.
func ParseFormat(name string) (Format, bool) {
	for _, alias := range strings.Split(name, ",") {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "aif" {
			alias = "aiff"
		}
		for f, n := range formatNames {
			if n == alias {
				return f, true
			}
		}
	}
	return FormatUnknown, false
}

// Lossless reports whether the format preserves exact sample data.
// Lossless formats are bounded by bit depth, lossy ones by bit rate.
func (f Format) Lossless() bool {
	switch f {
	case FormatAIFF, FormatFLAC, FormatWAV:
		return true
	}
	return false
}

// Lossy reports whether the format uses perceptual compression.
func (f Format) Lossy() bool {
	switch f {
	case FormatMP3, FormatOGG, FormatAAC:
		return true
	}
	return false
}
