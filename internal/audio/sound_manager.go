// Package audio plays background music and short cues for game events.
// Sounds are synthesized at runtime, so no asset files are needed.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/hue-arcade/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker and a mixer that all sounds play through.
// Every method is safe to call before Initialize or after a failed
// Initialize; it then does nothing.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicOn     bool
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates a sound manager. A nil logger disables cue logging.
func NewSoundManager(logger *log.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether the device is open.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// MusicPlaying reports whether the background track is audible.
func (sm *SoundManager) MusicPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.musicOn
}

// PlayMusic starts the background track from the top.
func (sm *SoundManager) PlayMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.music != nil {
		sm.music.Streamer = nil
	}
	sm.music = &beep.Ctrl{Streamer: volume(NewMusic(sampleRate), 0.5)}
	sm.mixer.Add(sm.music)
	speaker.Unlock()
	sm.musicOn = true
}

// PauseMusic silences the background track without losing its position.
func (sm *SoundManager) PauseMusic() {
	sm.setMusicPaused(true)
}

// ResumeMusic continues a paused background track.
func (sm *SoundManager) ResumeMusic() {
	sm.setMusicPaused(false)
}

func (sm *SoundManager) setMusicPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = paused
	speaker.Unlock()
	sm.musicOn = !paused
}

// PlayLost plays the death cue.
func (sm *SoundManager) PlayLost() { sm.play(LostCue(sampleRate)) }

// PlayUnlock plays the unlock chime.
func (sm *SoundManager) PlayUnlock() { sm.play(UnlockCue(sampleRate)) }

// PlayBlock plays the click for a blocked arrow.
func (sm *SoundManager) PlayBlock() { sm.play(BlockCue(sampleRate)) }

// PlayHit plays the buzz for an arrow that got through.
func (sm *SoundManager) PlayHit() { sm.play(HitCue(sampleRate)) }

// PlayBoss plays the camping penalty warning.
func (sm *SoundManager) PlayBoss() { sm.play(BossCue(sampleRate)) }

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// HandleEvent maps a game event to music control and cues.
func (sm *SoundManager) HandleEvent(ev core.Event) {
	if sm.logger != nil {
		sm.logger.Debug("audio cue", "event", ev)
	}

	switch ev {
	case core.EventDied:
		sm.PauseMusic()
		sm.PlayLost()
	case core.EventPaused:
		sm.PauseMusic()
	case core.EventResumed:
		sm.ResumeMusic()
	case core.EventRestarted:
		sm.PlayMusic()
	case core.EventPaletteUnlocked, core.EventLevelCleared, core.EventWon:
		sm.PlayUnlock()
	case core.EventBossSpawned:
		sm.PlayBoss()
	case core.EventBlocked:
		sm.PlayBlock()
	case core.EventHit:
		sm.PlayHit()
	}
}

// Cleanup stops every sound. The speaker itself stays open for the process.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.music = nil
	sm.musicOn = false
	sm.initialized = false
}
