// Package audio plays short UI sound cues.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue names.
const (
	CueHover = "hover"
	CueOpen  = "open"
)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager holds decoded cues and mixes them to the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	volume float64 // 0.0 to 1.0
	cues   map[string]*beep.Buffer

	// mixer carries every playing cue; it is the only streamer the
	// speaker plays.
	mixer *beep.Mixer

	log *zap.Logger
}

// New creates a new audio manager.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		cues:       make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
		log:        log,
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Load decodes WAV data into a buffer stored under name, resampled to the
// output rate.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  m.sampleRate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(src)

	m.mu.Lock()
	m.cues[name] = buf
	m.mu.Unlock()

	m.log.Debug("cue loaded", zap.String("name", name), zap.Int("samples", buf.Len()))
	return nil
}

// Has reports whether a cue is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cues[name]
	return ok
}

// Play mixes the named cue in. Unknown cues are ignored.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	buf := m.cues[name]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return nil
	}

	s := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	}

	// Hold the speaker lock while touching the mixer it is streaming.
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Playing returns the number of cues currently in the mixer.
func (m *Manager) Playing() int {
	return m.mixer.Len()
}

// PanelOpened plays the open cue.
func (m *Manager) PanelOpened(string) {
	m.cue(CueOpen)
}

// PanelClosed does nothing; closing is silent.
func (m *Manager) PanelClosed(string) {}

// Hovered plays the hover cue.
func (m *Manager) Hovered() {
	m.cue(CueHover)
}

func (m *Manager) cue(name string) {
	if err := m.Play(name); err != nil && !errors.Is(err, ErrNotInitialized) {
		m.log.Warn("play cue", zap.String("name", name), zap.Error(err))
	}
}

// volumeExponent converts a 0-1 volume to the base-2 exponent used by
// effects.Volume: vol=1 -> 0, vol=0.5 -> -1.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
