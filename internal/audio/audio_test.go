package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/hue-arcade/internal/core"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d is not mono: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("streamer did not end within %d samples", limit)
	return total, peak
}

func TestToneLength(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, peak := drain(t, NewTone(440, 100*time.Millisecond, tc.wave, testRate), testRate.N(time.Second))
			if n != testRate.N(100*time.Millisecond) {
				t.Errorf("tone length = %d samples, expected %d", n, testRate.N(100*time.Millisecond))
			}
			if peak > 1 || peak == 0 {
				t.Errorf("peak = %f, expected within (0, 1]", peak)
			}
		})
	}
}

func TestSquareWaveValues(t *testing.T) {
	buf := make([][2]float64, 200)
	n, _ := NewTone(220, 10*time.Millisecond, WaveSquare, testRate).Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}
}

func TestFadeEndsSilent(t *testing.T) {
	d := 50 * time.Millisecond
	s := NewFade(NewTone(440, d, WaveSquare, testRate), d, 5*time.Millisecond, 20*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, expected %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %f", buf[0][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("last sample should be near silent, got %f", last)
	}
}

func TestCuesEnd(t *testing.T) {
	cues := map[string]func(beep.SampleRate) beep.Streamer{
		"lost":   LostCue,
		"unlock": UnlockCue,
		"block":  BlockCue,
		"hit":    HitCue,
		"boss":   BossCue,
	}
	for name, cue := range cues {
		t.Run(name, func(t *testing.T) {
			n, peak := drain(t, cue(testRate), testRate.N(2*time.Second))
			if n == 0 || peak == 0 {
				t.Errorf("cue produced no sound: n=%d peak=%f", n, peak)
			}
			if peak > 1 {
				t.Errorf("cue clips: peak=%f", peak)
			}
		})
	}
}

func TestMusicNeverEnds(t *testing.T) {
	m := NewMusic(testRate)
	buf := make([][2]float64, testRate.N(time.Second))
	for i := 0; i < 5; i++ {
		n, ok := m.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("music stopped after %d seconds", i)
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(nil)
	if sm.Enabled() {
		t.Fatal("manager should start disabled")
	}

	sm.PlayMusic()
	for _, ev := range []core.Event{
		core.EventDied, core.EventPaused, core.EventResumed, core.EventRestarted,
		core.EventPaletteUnlocked, core.EventBossSpawned, core.EventBlocked, core.EventHit,
	} {
		sm.HandleEvent(ev)
	}
	if sm.MusicPlaying() {
		t.Error("music should not play without a device")
	}
	sm.Cleanup()
}
