package tts

import (
	"errors"
	"fmt"
)

// Common errors for the synthesis and playback pipeline.
var (
	// Synthesis errors
	ErrTransport           = errors.New("synthesis request failed")
	ErrResponseDecode      = errors.New("cannot decode synthesis response")
	ErrMissingAudioContent = errors.New("synthesis response has no audioContent field")

	// Decode errors
	ErrBadBase64       = errors.New("audio content is not valid base64")
	ErrContainerFormat = errors.New("audio content is not a linear PCM WAV container")

	// Device errors
	ErrNoOutputDevices = errors.New("could not enumerate output devices")
	ErrDeviceNotFound  = errors.New("configured output device not found")

	// Playback errors
	ErrStreamOpen     = errors.New("could not open output stream")
	ErrPlaybackSubmit = errors.New("output device rejected the sample stream")

	// Configuration errors
	ErrMissingConfig = errors.New("required configuration missing")
)

// Stage identifies the pipeline stage at which an invocation failed. The
// five stages are independently observable so an operator can tell bad
// credentials from a wrong device name from malformed audio.
type Stage int

const (
	// StageSynthesize covers the HTTP round trip to the provider.
	StageSynthesize Stage = iota
	// StageExtractAudio covers pulling audioContent out of the response.
	StageExtractAudio
	// StageDecode covers base64 and WAV container decoding.
	StageDecode
	// StageDeviceLookup covers output device resolution.
	StageDeviceLookup
	// StagePlayback covers opening the stream and submitting samples.
	StagePlayback
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageSynthesize:
		return "synthesize"
	case StageExtractAudio:
		return "extract-audio"
	case StageDecode:
		return "decode"
	case StageDeviceLookup:
		return "device-lookup"
	case StagePlayback:
		return "playback"
	default:
		return "unknown"
	}
}

// StageError wraps a pipeline failure with the stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// failed builds the terminal outcome for a stage failure.
func failed(stage Stage, err error) Outcome {
	return Outcome{Err: &StageError{Stage: stage, Err: err}}
}
