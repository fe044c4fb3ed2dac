package audio

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/sahilm/fuzzy"

	"github.com/sayline/sayline/tts"
)

// System owns the PortAudio host lifetime and implements both
// tts.DeviceResolver and tts.Sink on top of it. Open it once at startup
// and Close it after the completion signal fires; streams must not
// outlive it.
type System struct{}

// OpenSystem initializes the PortAudio host.
func OpenSystem() (*System, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio host: %w", err)
	}
	return &System{}, nil
}

// Close terminates the PortAudio host.
func (s *System) Close() error {
	return portaudio.Terminate()
}

// outputDevice wraps a host device handle.
type outputDevice struct {
	info *portaudio.DeviceInfo
}

// Name implements tts.Device.
func (d outputDevice) Name() string { return d.info.Name }

// Resolve implements tts.DeviceResolver. Enumeration happens on every
// call so a device plugged in after startup is still found. Matching is
// exact name equality; near misses are only surfaced as log hints.
func (s *System) Resolve(targetName string) (tts.Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrNoOutputDevices, err)
	}

	outputs := make([]*portaudio.DeviceInfo, 0, len(devices))
	for _, dev := range devices {
		if dev.MaxOutputChannels <= 0 || strings.TrimSpace(dev.Name) == "" {
			continue
		}
		outputs = append(outputs, dev)
	}
	if len(outputs) == 0 {
		return nil, tts.ErrNoOutputDevices
	}

	names := make([]string, len(outputs))
	for i, dev := range outputs {
		names[i] = dev.Name
	}

	i, ok := matchName(names, targetName)
	if !ok {
		if hints := nearestNames(names, targetName); len(hints) > 0 {
			log.Error("output device not found",
				"wanted", targetName,
				"closest", strings.Join(hints, ", "))
		}
		return nil, fmt.Errorf("%w: %q", tts.ErrDeviceNotFound, targetName)
	}

	return outputDevice{info: outputs[i]}, nil
}

// matchName finds target in names by exact equality.
func matchName(names []string, target string) (int, bool) {
	for i, name := range names {
		if name == target {
			return i, true
		}
	}
	return 0, false
}

// nearestNames returns up to three fuzzy matches for a name that did not
// resolve, best first.
func nearestNames(names []string, target string) []string {
	matches := fuzzy.Find(target, names)
	hints := make([]string, 0, 3)
	for _, m := range matches {
		hints = append(hints, m.Str)
		if len(hints) == 3 {
			break
		}
	}
	return hints
}

// player feeds decoded PCM into the device callback, zero-filling once
// the samples run out.
type player struct {
	mu      sync.Mutex
	samples []int16
	pos     int
}

func (p *player) fill(out []int16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(out, p.samples[p.pos:])
	p.pos += n
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// playback is the open stream handle returned to the pipeline.
type playback struct {
	stream *portaudio.Stream
}

// Close stops and releases the stream.
func (p *playback) Close() error {
	return errors.Join(p.stream.Stop(), p.stream.Close())
}

// Play implements tts.Sink. It opens an output stream on the resolved
// device at the audio's native rate and starts it; the call returns as
// soon as the stream is running, not when the audio finishes.
func (s *System) Play(device tts.Device, audio *tts.DecodedAudio) (tts.Playback, error) {
	out, ok := device.(outputDevice)
	if !ok {
		return nil, fmt.Errorf("%w: device %q was not resolved by this host", tts.ErrStreamOpen, device.Name())
	}
	if audio.Channels > out.info.MaxOutputChannels {
		return nil, fmt.Errorf("%w: device %q supports %d output channels, audio has %d",
			tts.ErrStreamOpen, out.info.Name, out.info.MaxOutputChannels, audio.Channels)
	}

	p := &player{samples: audio.Samples}

	params := portaudio.HighLatencyParameters(nil, out.info)
	params.Output.Channels = audio.Channels
	params.SampleRate = float64(audio.SampleRate)
	params.FramesPerBuffer = portaudio.FramesPerBufferUnspecified

	stream, err := portaudio.OpenStream(params, p.fill)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrStreamOpen, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: %v", tts.ErrPlaybackSubmit, err)
	}

	log.Debug("stream running",
		"device", out.info.Name,
		"sampleRate", audio.SampleRate,
		"channels", audio.Channels,
		"latency", params.Output.Latency)

	return &playback{stream: stream}, nil
}
