package tts

import (
	"sync"
	"time"
)

// Mock implementations of the pipeline components, used by tests and
// available for wiring a provider-free dry run.

// MockSynthesizer returns a canned response or error.
type MockSynthesizer struct {
	Response SynthesisResponse
	Err      error

	mu        sync.Mutex
	calls     int
	lastReq   SynthesisRequest
	lastToken string
}

// Synthesize implements Synthesizer.
func (m *MockSynthesizer) Synthesize(req SynthesisRequest, token string) (SynthesisResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	m.lastToken = token
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// Calls returns how many times Synthesize was invoked.
func (m *MockSynthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest returns the most recent request and token.
func (m *MockSynthesizer) LastRequest() (SynthesisRequest, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq, m.lastToken
}

// MockDecoder returns a canned DecodedAudio or error.
type MockDecoder struct {
	Audio *DecodedAudio
	Err   error

	mu    sync.Mutex
	calls int
}

// Decode implements Decoder.
func (m *MockDecoder) Decode(string) (*DecodedAudio, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

// Calls returns how many times Decode was invoked.
func (m *MockDecoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockDevice is a named device handle.
type MockDevice struct {
	DeviceName string
}

// Name implements Device.
func (m MockDevice) Name() string { return m.DeviceName }

// MockResolver resolves to a canned device or error.
type MockResolver struct {
	Device Device
	Err    error

	mu    sync.Mutex
	calls int
}

// Resolve implements DeviceResolver.
func (m *MockResolver) Resolve(string) (Device, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Device, nil
}

// Calls returns how many times Resolve was invoked.
func (m *MockResolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockPlayback records whether it was closed.
type MockPlayback struct {
	mu     sync.Mutex
	closed bool
}

// Close implements Playback.
func (m *MockPlayback) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockPlayback) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockSink records playback submissions.
type MockSink struct {
	Err error

	mu       sync.Mutex
	calls    int
	playback *MockPlayback
	lastDur  time.Duration
}

// LastDuration returns the header duration of the most recently played
// audio.
func (m *MockSink) LastDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDur
}

// Play implements Sink.
func (m *MockSink) Play(_ Device, audio *DecodedAudio) (Playback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	m.lastDur = audio.Duration
	m.playback = &MockPlayback{}
	return m.playback, nil
}

// Calls returns how many times Play was invoked.
func (m *MockSink) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPlayback returns the playback handle from the most recent Play.
func (m *MockSink) LastPlayback() *MockPlayback {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playback
}
