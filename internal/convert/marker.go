package convert

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// markerFrames are the conversion markers as (description, value)
// pairs for TXXX frames. They match MarkerTags.
var markerFrames = [][2]string{
	{"REKORDBOX_READY", "1"},
	{"CONVERT_FOR_REKORDBOX", "0"},
}

// stampMarkers writes the conversion markers into an MP3 file as
// ID3v2.4 user-defined text frames.
// This is boundary code - performs file I/O.
func stampMarkers(path string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)

	for _, frame := range markerFrames {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: frame[0],
			Value:       frame[1],
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}

	return nil
}
