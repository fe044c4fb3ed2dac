// Package audio implements the hardware-facing half of the pipeline: WAV
// decoding and PortAudio-backed device resolution and playback.
package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"

	"github.com/sayline/sayline/tts"
)

// pcmFormat is the WAV audio format tag for uncompressed linear PCM.
const pcmFormat = 1

// WAVDecoder turns base64-encoded LINEAR16 WAV payloads into PCM samples.
type WAVDecoder struct{}

// NewWAVDecoder creates a WAVDecoder.
func NewWAVDecoder() *WAVDecoder {
	return &WAVDecoder{}
}

// Decode implements tts.Decoder. The payload must be standard base64
// wrapping a PCM WAV container with 16-bit samples; anything else fails
// with tts.ErrBadBase64 or tts.ErrContainerFormat.
func (d *WAVDecoder) Decode(audioContent string) (*tts.DecodedAudio, error) {
	raw, err := base64.StdEncoding.DecodeString(audioContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrBadBase64, err)
	}

	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV container", tts.ErrContainerFormat)
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d is not PCM", tts.ErrContainerFormat, dec.WavAudioFormat)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: bit depth %d is not 16", tts.ErrContainerFormat, dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: read samples: %v", tts.ErrContainerFormat, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	decoded := &tts.DecodedAudio{
		Samples:    samples,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}

	// A container with no readable duration still plays; the post-roll
	// wait falls back upstream.
	if duration, err := dec.Duration(); err == nil {
		decoded.Duration = duration
	} else {
		log.Debug("container reports no duration", "err", err)
	}

	return decoded, nil
}
