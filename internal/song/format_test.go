package song

import "testing"

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"flac", FormatFLAC, true},
		{"mp3", FormatMP3, true},
		{"wav", FormatWAV, true},
		{"aiff", FormatAIFF, true},
		{"aif", FormatAIFF, true},
		{"ogg", FormatOGG, true},
		{"aac", FormatAAC, true},
		{"FLAC", FormatFLAC, true},
		{"mov,mp4,m4a,3gp,3g2,mj2", FormatUnknown, false},
		{"matroska,webm", FormatUnknown, false},
		{"", FormatUnknown, false},
	}

	for _, tc := range cases {
		got, ok := ParseFormat(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseFormat_AliasList(t *testing.T) {
	// ffprobe can report alias lists; the recognized alias wins
	got, ok := ParseFormat("ogg,oga")
	if !ok || got != FormatOGG {
		t.Errorf("ParseFormat(ogg,oga) = %v, %v; want ogg, true", got, ok)
	}
}

func TestFormatFamilies(t *testing.T) {
	lossless := []Format{FormatAIFF, FormatFLAC, FormatWAV}
	lossy := []Format{FormatMP3, FormatOGG, FormatAAC}

	for _, f := range lossless {
		if !f.Lossless() || f.Lossy() {
			t.Errorf("%v: Lossless() = %v, Lossy() = %v; want true, false", f, f.Lossless(), f.Lossy())
		}
	}
	for _, f := range lossy {
		if f.Lossless() || !f.Lossy() {
			t.Errorf("%v: Lossless() = %v, Lossy() = %v; want false, true", f, f.Lossless(), f.Lossy())
		}
	}

	if FormatUnknown.Lossless() || FormatUnknown.Lossy() {
		t.Error("FormatUnknown belongs to no family")
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatAIFF.String(); got != "aiff" {
		t.Errorf("String() = %q, want %q", got, "aiff")
	}
	if got := FormatUnknown.String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
