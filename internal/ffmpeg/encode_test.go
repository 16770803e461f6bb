package ffmpeg

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestJobArgs_AIFF(t *testing.T) {
	j := Job{
		InputPath:      "in.flac",
		OutputPath:     "out/song.aiff",
		Codec:          "pcm_s16le",
		Format:         "aiff",
		SampleRate:     44100,
		SampleFmt:      "s16",
		VolumeOffsetDB: 2.5,
		Metadata:       []string{"REKORDBOX_READY=1", "CONVERT_FOR_REKORDBOX=0"},
	}

	got := strings.Join(j.Args(), " ")
	want := "-y -i in.flac -af volume=2.5dB -acodec pcm_s16le -f aiff -ar 44100" +
		" -write_id3v2 1 -metadata REKORDBOX_READY=1 -metadata CONVERT_FOR_REKORDBOX=0" +
		" -sample_fmt s16 out/song.aiff"

	if got != want {
		t.Errorf("Args() = %q\nwant     %q", got, want)
	}
}

func TestJobArgs_MP3(t *testing.T) {
	j := Job{
		InputPath:      "in.ogg",
		OutputPath:     "out/song.mp3",
		Codec:          "mp3",
		Format:         "mp3",
		SampleRate:     44100,
		BitRate:        320000,
		VolumeOffsetDB: -1.5,
	}

	got := strings.Join(j.Args(), " ")
	want := "-y -i in.ogg -af volume=-1.5dB -acodec mp3 -f mp3 -ar 44100" +
		" -write_id3v2 1 -b:a 320000 out/song.mp3"

	if got != want {
		t.Errorf("Args() = %q\nwant     %q", got, want)
	}
}

func TestJobArgs_ZeroOffsetOmitsFilter(t *testing.T) {
	j := Job{
		InputPath:  "in.wav",
		OutputPath: "out.aiff",
		Codec:      "pcm_s16le",
		Format:     "aiff",
		SampleRate: 44100,
		SampleFmt:  "s16",
	}

	for _, arg := range j.Args() {
		if arg == "-af" {
			t.Error("zero offset must use the raw stream, no volume filter")
		}
	}
}

func TestJobArgs_OverwriteAlways(t *testing.T) {
	args := Job{InputPath: "a", OutputPath: "b"}.Args()
	if args[0] != "-y" {
		t.Errorf("args[0] = %q, want -y", args[0])
	}
}

func TestEncode_MissingInput(t *testing.T) {
	j := Job{
		InputPath:  filepath.Join(t.TempDir(), "missing.flac"),
		OutputPath: filepath.Join(t.TempDir(), "out.aiff"),
		Codec:      "pcm_s16le",
		Format:     "aiff",
		SampleRate: 44100,
	}

	err := Encode(context.Background(), j)
	if err == nil {
		t.Fatal("expected error for missing input")
	}

	encErr, ok := err.(*EncodeError)
	if !ok {
		t.Fatalf("error type = %T, want *EncodeError", err)
	}
	if encErr.InputPath != j.InputPath {
		t.Errorf("InputPath = %q, want %q", encErr.InputPath, j.InputPath)
	}
	if encErr.OutputPath != j.OutputPath {
		t.Errorf("OutputPath = %q, want %q", encErr.OutputPath, j.OutputPath)
	}
}
