// Package wavio synthesizes WAV files in memory. The converter never
// needs it at run time; tests use it to fabricate inputs with known
// sample rate, depth, and loudness for round trips through the real
// engine.
package wavio

import (
	"encoding/binary"
)

// Spec describes the PCM layout of a synthesized file.
type Spec struct {
	SampleRate    int // Hz
	Channels      int
	BitsPerSample int
}

// CD returns the CD-DA layout: 44.1kHz stereo 16-bit.
func CD() Spec {
	return Spec{SampleRate: 44100, Channels: 2, BitsPerSample: 16}
}

// Write builds a complete WAV file around raw little-endian PCM
// samples.
// This is a pure function: raw audio bytes → complete WAV file bytes.
func Write(spec Spec, samples []byte) []byte {
	if samples == nil {
		samples = []byte{}
	}

	dataSize := uint32(len(samples))
	fileSize := 36 + dataSize // Total - 8 bytes for RIFF header

	// WAV header is 44 bytes
	header := make([]byte, 44)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], fileSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // Subchunk1Size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], 1)  // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(spec.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(spec.SampleRate))

	bytesPerSample := spec.BitsPerSample / 8
	byteRate := spec.SampleRate * spec.Channels * bytesPerSample
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))

	blockAlign := spec.Channels * bytesPerSample
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(spec.BitsPerSample))

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	// Combine header and data
	wav := make([]byte, 44+len(samples))
	copy(wav[0:44], header)
	copy(wav[44:], samples)

	return wav
}

// SquareWave synthesizes frames of a 16-bit square wave with the given
// amplitude and period (in frames). Amplitude 16384 peaks near -6 dBFS,
// full scale 32767 near 0 dBFS.
func SquareWave(spec Spec, frames int, amplitude int16, period int) []byte {
	if period < 2 {
		period = 2
	}

	samples := make([]byte, frames*spec.Channels*2)
	offset := 0
	for i := 0; i < frames; i++ {
		value := amplitude
		if (i/(period/2))%2 == 1 {
			value = -amplitude
		}
		for c := 0; c < spec.Channels; c++ {
			binary.LittleEndian.PutUint16(samples[offset:], uint16(value))
			offset += 2
		}
	}
	return samples
}
