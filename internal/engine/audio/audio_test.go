package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// makeWAV encodes n samples of a sine tone at the given rate.
func makeWAV(t *testing.T, rate beep.SampleRate, n int) []byte {
	t.Helper()

	phase := 0.0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := math.Sin(phase) * 0.5
			samples[i][0], samples[i][1] = v, v
			phase += 2 * math.Pi * 440 / float64(rate)
		}
		return len(samples), true
	})

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(n, tone), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestVolumeExponent(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := volumeExponent(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeExponent(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestSetVolume(t *testing.T) {
	m := New(nil)
	if m.Volume() != 1.0 {
		t.Errorf("default volume = %f, want 1.0", m.Volume())
	}

	m.SetVolume(0.5)
	if m.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", m.Volume())
	}
	m.SetVolume(2)
	if m.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", m.Volume())
	}
}

func TestLoad(t *testing.T) {
	m := New(nil)
	if err := m.Load(CueHover, makeWAV(t, DefaultSampleRate, 4410)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Has(CueHover) {
		t.Fatal("cue not stored")
	}
	if got := m.cues[CueHover].Len(); got != 4410 {
		t.Errorf("buffer len = %d, want 4410", got)
	}
}

func TestLoadResamples(t *testing.T) {
	m := New(nil)
	if err := m.Load(CueOpen, makeWAV(t, 22050, 2205)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// 0.1s at 22050 Hz becomes roughly 0.1s at 44100 Hz.
	if got := m.cues[CueOpen].Len(); got < 4300 || got > 4500 {
		t.Errorf("buffer len = %d, want about 4410", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	m := New(nil)
	if err := m.Load("bad", []byte("not a wav")); err == nil {
		t.Error("expected error for invalid data")
	}
	if m.Has("bad") {
		t.Error("invalid cue should not be stored")
	}
}

func TestPlay(t *testing.T) {
	m := New(nil)
	if err := m.Load(CueHover, makeWAV(t, DefaultSampleRate, 441)); err != nil {
		t.Fatal(err)
	}

	if err := m.Play(CueHover); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}

	// Drive the mixer directly instead of opening a device.
	m.initialized = true

	if err := m.Play("missing"); err != nil {
		t.Errorf("unknown cue: %v", err)
	}
	if m.Playing() != 0 {
		t.Errorf("unknown cue was mixed")
	}

	m.Hovered()
	m.PanelClosed("about")
	if m.Playing() != 1 {
		t.Errorf("playing = %d, want 1", m.Playing())
	}

	// Drain the cue; the mixer drops finished streamers.
	samples := make([][2]float64, 1024)
	m.mixer.Stream(samples)
	m.mixer.Stream(samples)
	if m.Playing() != 0 {
		t.Errorf("playing after drain = %d, want 0", m.Playing())
	}
}
