//go:build !libretro && !ios

package ebiten

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	audioSampleRate = 48000
	audioChannels   = 2

	// maxQueuedBytes caps the backlog at ~100ms so a slow consumer
	// cannot drift the buzzer far behind the picture
	maxQueuedBytes = audioSampleRate * audioChannels * 2 / 10
)

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// AudioPlayer plays 16-bit stereo PCM produced by the emulator. It
// implements io.Reader for oto, handing out queued bytes and padding
// with silence when the queue runs dry.
type AudioPlayer struct {
	player *oto.Player

	mu    sync.Mutex
	queue []byte
}

// NewAudioPlayer opens the audio device and starts playback.
func NewAudioPlayer() (*AudioPlayer, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: audioChannels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoErr == nil {
			<-ready
		}
	})
	if otoErr != nil {
		return nil, fmt.Errorf("opening audio device: %w", otoErr)
	}

	a := &AudioPlayer{
		queue: make([]byte, 0, maxQueuedBytes),
	}
	a.player = otoCtx.NewPlayer(a)
	a.player.Play()
	return a, nil
}

// QueueSamples appends int16 stereo samples to the playback queue.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, sample := range samples {
		a.queue = append(a.queue, byte(sample), byte(sample>>8))
	}
	// Drop the oldest audio, keeping sample pairs aligned
	if over := len(a.queue) - maxQueuedBytes; over > 0 {
		over += (4 - over%4) % 4
		a.queue = append(a.queue[:0], a.queue[over:]...)
	}
}

// Read implements io.Reader for the oto player.
func (a *AudioPlayer) Read(p []byte) (int, error) {
	a.mu.Lock()
	n := copy(p, a.queue)
	a.queue = append(a.queue[:0], a.queue[n:]...)
	a.mu.Unlock()

	clear(p[n:])
	return len(p), nil
}

// Close stops playback.
func (a *AudioPlayer) Close() {
	if a.player != nil {
		_ = a.player.Close()
		a.player = nil
	}
}
