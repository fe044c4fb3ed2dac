// Package tts implements the synthesize-and-play core of sayline: a single
// text line is sent to Google Cloud Text-to-Speech, the returned LINEAR16
// WAV is decoded and played on a configured output device, and the process
// exits once playback has drained.
package tts

import (
	"io"
	"time"
)

// SynthesisRequest is the per-trigger request sent to the provider. It is
// built fresh from the current text and configuration and never persisted.
type SynthesisRequest struct {
	Text         string
	LanguageCode string
	VoiceName    string
}

// SynthesisResponse is the provider's field mapping. The only field the
// pipeline consumes is "audioContent", a base64-encoded WAV.
type SynthesisResponse map[string]string

// Synthesizer issues one synthesis request and returns the raw response
// mapping. Implementations do not retry; a single bad synthesis is surfaced
// to the caller.
type Synthesizer interface {
	Synthesize(req SynthesisRequest, token string) (SynthesisResponse, error)
}

// DecodedAudio is an in-memory interleaved 16-bit PCM sample stream.
// Duration is derived from the container header; zero means the header did
// not yield one, in which case callers substitute a fixed fallback for the
// post-roll wait only. Playback always plays the full sample slice.
type DecodedAudio struct {
	Samples    []int16
	Channels   int
	SampleRate int
	Duration   time.Duration
}

// Decoder turns the provider's base64 audio content into playable samples.
type Decoder interface {
	Decode(audioContent string) (*DecodedAudio, error)
}

// Device is an opaque handle to an output audio device, keyed by its
// human-readable name.
type Device interface {
	Name() string
}

// DeviceResolver locates the configured output device. Enumeration happens
// on every call; device sets can change between invocations.
type DeviceResolver interface {
	Resolve(targetName string) (Device, error)
}

// Playback is a started output stream. Closing it stops the stream and
// releases the device; Close is safe to call after playback has drained.
type Playback io.Closer

// Sink opens an output stream on a device and submits a sample stream to
// it. The call returns as soon as playback has started; the caller is
// responsible for waiting out the audio duration before closing.
type Sink interface {
	Play(device Device, audio *DecodedAudio) (Playback, error)
}
