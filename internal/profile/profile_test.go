package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryphile/cdj-prep/internal/song"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 44100, p.MaxSampleRate)
	assert.Equal(t, 16, p.MaxBitDepth)
	assert.Equal(t, 320000, p.MaxBitRate)
	assert.Equal(t, -0.5, p.PeakDB)
	assert.Empty(t, p.Validate())
}

func TestDefault_CompliantSet(t *testing.T) {
	p := Default()

	assert.True(t, p.Compliant(song.FormatAIFF))
	assert.True(t, p.Compliant(song.FormatWAV))
	assert.True(t, p.Compliant(song.FormatMP3))
	assert.True(t, p.Compliant(song.FormatAAC))

	// FLAC and OGG are not CDJ-playable; they always convert
	assert.False(t, p.Compliant(song.FormatFLAC))
	assert.False(t, p.Compliant(song.FormatOGG))
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeProfile(t, `{"peakDB": -1.0, "maxBitRate": 256000}`)

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, -1.0, p.PeakDB)
	assert.Equal(t, 256000, p.MaxBitRate)

	// Omitted fields keep their defaults
	assert.Equal(t, 44100, p.MaxSampleRate)
	assert.Equal(t, 16, p.MaxBitDepth)
	assert.True(t, p.Compliant(song.FormatMP3))
}

func TestLoad_ExplicitZeroPeak(t *testing.T) {
	// A 0.0 dBFS peak target is a legal (if loud) choice, distinct
	// from leaving the field out
	p, err := Load(writeProfile(t, `{"peakDB": 0.0}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.PeakDB)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative sample rate", `{"maxSampleRate": -1}`},
		{"zero bit depth", `{"maxBitDepth": 0}`},
		{"peak above full scale", `{"peakDB": 1.5}`},
		{"unknown format", `{"compliantFormats": ["mp3", "m4a"]}`},
		{"malformed json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeProfile(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
