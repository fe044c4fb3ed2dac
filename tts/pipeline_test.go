package tts

import (
	"errors"
	"testing"
	"time"
)

type pipelineFixture struct {
	synth    *MockSynthesizer
	decoder  *MockDecoder
	resolver *MockResolver
	sink     *MockSink

	pipeline *Pipeline
	slept    []time.Duration
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		synth: &MockSynthesizer{
			Response: SynthesisResponse{"audioContent": "ZmFrZS13YXY="},
		},
		decoder: &MockDecoder{
			Audio: &DecodedAudio{
				Samples:    make([]int16, 24000),
				Channels:   1,
				SampleRate: 24000,
				Duration:   time.Second,
			},
		},
		resolver: &MockResolver{Device: MockDevice{DeviceName: "Speakers"}},
		sink:     &MockSink{},
	}
	f.pipeline = NewPipeline(f.synth, f.decoder, f.resolver, f.sink)
	f.pipeline.sleep = func(d time.Duration) { f.slept = append(f.slept, d) }
	return f
}

func testRunConfig() Config {
	cfg := DefaultConfig()
	cfg.GCloudToken = "tok"
	cfg.GCloudLanguage = "en-US"
	cfg.GCloudVoice = "en-US-Standard-A"
	cfg.OutputDevice = "Speakers"
	return cfg
}

func TestRunPlaysAndWaitsOutTheAudio(t *testing.T) {
	f := newPipelineFixture()
	out := f.pipeline.Run("hello", testRunConfig())

	if !out.Played() {
		t.Fatalf("Expected success, got %v", out.Err)
	}
	if out.Duration != time.Second {
		t.Errorf("Expected 1s duration, got %v", out.Duration)
	}

	req, token := f.synth.LastRequest()
	if req.Text != "hello" || req.LanguageCode != "en-US" || req.VoiceName != "en-US-Standard-A" {
		t.Errorf("Unexpected synthesis request: %+v", req)
	}
	if token != "tok" {
		t.Errorf("Expected token to be forwarded, got %q", token)
	}

	if len(f.slept) != 1 || f.slept[0] != time.Second+500*time.Millisecond {
		t.Errorf("Expected one wait of duration+500ms, got %v", f.slept)
	}
	if pb := f.sink.LastPlayback(); pb == nil || !pb.Closed() {
		t.Error("Expected the stream to be closed after the wait")
	}
}

func TestRunFallsBackWhenDurationUnknown(t *testing.T) {
	f := newPipelineFixture()
	f.decoder.Audio.Duration = 0

	out := f.pipeline.Run("hello", testRunConfig())
	if !out.Played() {
		t.Fatalf("Expected success, got %v", out.Err)
	}
	if out.Duration != 25*time.Second {
		t.Errorf("Expected 25s fallback duration, got %v", out.Duration)
	}
	if len(f.slept) != 1 || f.slept[0] != 25*time.Second+500*time.Millisecond {
		t.Errorf("Expected fallback wait, got %v", f.slept)
	}
}

func TestRunShortCircuitsOnStageFailure(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		arrange   func(*pipelineFixture)
		wantStage Stage
		wantErr   error
	}{
		{
			"synthesis failure",
			func(f *pipelineFixture) { f.synth.Err = boom },
			StageSynthesize, boom,
		},
		{
			"missing audio content",
			func(f *pipelineFixture) { f.synth.Response = SynthesisResponse{"metadata": "x"} },
			StageExtractAudio, ErrMissingAudioContent,
		},
		{
			"decode failure",
			func(f *pipelineFixture) { f.decoder.Err = ErrBadBase64 },
			StageDecode, ErrBadBase64,
		},
		{
			"device lookup failure",
			func(f *pipelineFixture) { f.resolver.Err = ErrDeviceNotFound },
			StageDeviceLookup, ErrDeviceNotFound,
		},
		{
			"playback failure",
			func(f *pipelineFixture) { f.sink.Err = ErrStreamOpen },
			StagePlayback, ErrStreamOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPipelineFixture()
			tt.arrange(f)

			out := f.pipeline.Run("hello", testRunConfig())
			if out.Played() {
				t.Fatal("Expected failure outcome")
			}

			var stageErr *StageError
			if !errors.As(out.Err, &stageErr) {
				t.Fatalf("Expected StageError, got %v", out.Err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("Expected stage %v, got %v", tt.wantStage, stageErr.Stage)
			}
			if !errors.Is(out.Err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, out.Err)
			}
			if len(f.slept) != 0 {
				t.Errorf("No wait should happen on failure, got %v", f.slept)
			}
		})
	}
}

func TestRunDoesNotAdvancePastFailedStage(t *testing.T) {
	f := newPipelineFixture()
	f.decoder.Err = ErrContainerFormat

	f.pipeline.Run("hello", testRunConfig())

	if f.synth.Calls() != 1 || f.decoder.Calls() != 1 {
		t.Errorf("Expected synth and decode to run once, got %d and %d", f.synth.Calls(), f.decoder.Calls())
	}
	if f.resolver.Calls() != 0 {
		t.Errorf("Resolver should not run after decode failure, got %d calls", f.resolver.Calls())
	}
	if f.sink.Calls() != 0 {
		t.Errorf("Sink should not run after decode failure, got %d calls", f.sink.Calls())
	}
}
