package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// streamingSize marks a RIFF or data chunk whose length was unknown when the header was written
const streamingSize = 0xFFFFFFFF

// ErrNotWAV is returned when the stream does not start with a RIFF/WAVE header
var ErrNotWAV = errors.New("not a WAV stream")

// WAVFormat is the fmt chunk of a WAV stream
type WAVFormat struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// DecodeWAV reads the header of a PCM WAV stream and returns its format and
// a reader positioned at the first sample. Synthesized streams carry an
// unknown data size; their sample reader runs to the end of r.
func DecodeWAV(r io.Reader) (WAVFormat, io.Reader, error) {
	var format WAVFormat

	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return format, nil, fmt.Errorf("failed to read WAV header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return format, nil, ErrNotWAV
	}

	haveFormat := false
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return format, nil, fmt.Errorf("failed to read WAV chunk: %w", err)
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return format, nil, fmt.Errorf("WAV fmt chunk too short: %d bytes", size)
			}
			body := make([]byte, size+size%2)
			if _, err := io.ReadFull(r, body); err != nil {
				return format, nil, fmt.Errorf("failed to read WAV fmt chunk: %w", err)
			}
			format.AudioFormat = binary.LittleEndian.Uint16(body[0:2])
			format.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			format.BitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFormat = true
		case "data":
			if !haveFormat {
				return format, nil, fmt.Errorf("WAV data chunk before fmt chunk")
			}
			if format.AudioFormat != 1 || format.BitsPerSample != 16 {
				return format, nil, fmt.Errorf("unsupported WAV encoding: format %d, %d bits", format.AudioFormat, format.BitsPerSample)
			}
			if format.Channels < 1 {
				return format, nil, fmt.Errorf("invalid WAV channel count %d", format.Channels)
			}
			if size == 0 || size == streamingSize {
				return format, r, nil
			}
			return format, io.LimitReader(r, int64(size)), nil
		default:
			if size == streamingSize {
				return format, nil, fmt.Errorf("WAV chunk %q has no length", id)
			}
			if _, err := io.CopyN(io.Discard, r, int64(size+size%2)); err != nil {
				return format, nil, fmt.Errorf("failed to skip WAV chunk %q: %w", id, err)
			}
		}
	}
}

// EncodeWAVHeader writes a 16-bit PCM WAV header for dataSize bytes of samples
func EncodeWAVHeader(w io.Writer, sampleRate, channels int, dataSize uint32) error {
	blockAlign := uint16(channels * 2)
	hdr := make([]byte, 0, 44)
	hdr = append(hdr, "RIFF"...)
	hdr = binary.LittleEndian.AppendUint32(hdr, 36+dataSize)
	hdr = append(hdr, "WAVEfmt "...)
	hdr = binary.LittleEndian.AppendUint32(hdr, 16)
	hdr = binary.LittleEndian.AppendUint16(hdr, 1)
	hdr = binary.LittleEndian.AppendUint16(hdr, uint16(channels))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(sampleRate))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(sampleRate)*uint32(blockAlign))
	hdr = binary.LittleEndian.AppendUint16(hdr, blockAlign)
	hdr = binary.LittleEndian.AppendUint16(hdr, 16)
	hdr = append(hdr, "data"...)
	hdr = binary.LittleEndian.AppendUint32(hdr, dataSize)
	_, err := w.Write(hdr)
	return err
}
