package audio

import "testing"

func TestMatchNameIsExact(t *testing.T) {
	names := []string{
		"Built-in Output",
		"USB Audio Device",
		"usb audio device",
	}

	tests := []struct {
		name    string
		target  string
		wantIdx int
		wantOK  bool
	}{
		{"exact match", "USB Audio Device", 1, true},
		{"case matters", "usb audio device", 2, true},
		{"no substring match", "USB Audio", 0, false},
		{"no prefix match", "Built-in", 0, false},
		{"missing", "HDMI Output", 0, false},
		{"empty target", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := matchName(names, tt.target)
			if ok != tt.wantOK {
				t.Fatalf("matchName(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("matchName(%q) = %d, want %d", tt.target, idx, tt.wantIdx)
			}
		})
	}
}

func TestNearestNamesSuggestsCloseMisses(t *testing.T) {
	names := []string{"Built-in Output", "USB Audio Device", "HDMI Output"}

	hints := nearestNames(names, "USB Audio")
	if len(hints) == 0 {
		t.Fatal("Expected a suggestion for a near miss")
	}
	if hints[0] != "USB Audio Device" {
		t.Errorf("Expected best hint first, got %q", hints[0])
	}

	if got := nearestNames(names, "zzzzzz"); len(got) != 0 {
		t.Errorf("Expected no hints for nonsense, got %v", got)
	}

	many := []string{"Output A1", "Output A2", "Output A3", "Output A4", "Output A5"}
	if got := nearestNames(many, "Output A"); len(got) > 3 {
		t.Errorf("Expected at most 3 hints, got %d", len(got))
	}
}

func TestPlayerFillCopiesAndZeroPads(t *testing.T) {
	p := &player{samples: []int16{1, 2, 3, 4, 5}}

	out := make([]int16, 3)
	p.fill(out)
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("First fill = %v, want [1 2 3]", out)
	}

	p.fill(out)
	if out[0] != 4 || out[1] != 5 {
		t.Errorf("Second fill = %v, want [4 5 0]", out)
	}
	if out[2] != 0 {
		t.Errorf("Expected zero padding past the end, got %d", out[2])
	}

	p.fill(out)
	for i, s := range out {
		if s != 0 {
			t.Errorf("Drained fill[%d] = %d, want 0", i, s)
		}
	}
}
