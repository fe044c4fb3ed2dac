package tts

import (
	"time"

	"github.com/charmbracelet/log"
)

const (
	// fallbackDuration is used for the post-roll wait when the container
	// header yields no duration. It never affects what gets played.
	fallbackDuration = 25 * time.Second

	// postRollMargin is added to the audio duration before the device is
	// released, so device buffers can drain without truncating the tail.
	postRollMargin = 500 * time.Millisecond
)

// Outcome is the terminal result of one pipeline invocation: either the
// audio played to completion (Err == nil, Duration set) or the chain
// failed at a stage (Err is a *StageError). There is no partial success.
type Outcome struct {
	Duration time.Duration
	Err      error
}

// Played reports whether the invocation reached playback and completed.
func (o Outcome) Played() bool {
	return o.Err == nil
}

// Pipeline composes synthesis, decoding, device lookup and playback into
// one fallible operation. Run blocks until playback has naturally
// completed; it is meant to be called from a background goroutine, never
// from the UI loop.
type Pipeline struct {
	synth   Synthesizer
	decoder Decoder
	devices DeviceResolver
	sink    Sink

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

// NewPipeline creates a pipeline from its four components.
func NewPipeline(synth Synthesizer, decoder Decoder, devices DeviceResolver, sink Sink) *Pipeline {
	return &Pipeline{
		synth:   synth,
		decoder: decoder,
		devices: devices,
		sink:    sink,
		sleep:   time.Sleep,
	}
}

// Run executes the stages in strict order, short-circuiting on the first
// failure. Every failure is final for this invocation; no stage is
// retried.
func (p *Pipeline) Run(text string, cfg Config) Outcome {
	req := SynthesisRequest{
		Text:         text,
		LanguageCode: cfg.GCloudLanguage,
		VoiceName:    cfg.GCloudVoice,
	}

	resp, err := p.synth.Synthesize(req, cfg.GCloudToken)
	if err != nil {
		return failed(StageSynthesize, err)
	}

	content, ok := resp["audioContent"]
	if !ok {
		return failed(StageExtractAudio, ErrMissingAudioContent)
	}

	audio, err := p.decoder.Decode(content)
	if err != nil {
		return failed(StageDecode, err)
	}

	device, err := p.devices.Resolve(cfg.OutputDevice)
	if err != nil {
		return failed(StageDeviceLookup, err)
	}

	playback, err := p.sink.Play(device, audio)
	if err != nil {
		return failed(StagePlayback, err)
	}
	defer playback.Close() //nolint:errcheck

	duration := audio.Duration
	if duration <= 0 {
		duration = fallbackDuration
	}

	log.Debug("playback started",
		"device", device.Name(),
		"duration", duration,
		"sampleRate", audio.SampleRate,
		"channels", audio.Channels)

	// Submission does not block until the audio finishes; wait it out plus
	// a margin before the deferred Close releases the stream.
	p.sleep(duration + postRollMargin)

	return Outcome{Duration: duration}
}
