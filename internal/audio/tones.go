package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// oscillator produces a fixed-length tone. A zero duration never ends.
type oscillator struct {
	freq     float64
	phase    float64
	total    int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone returns a streamer playing freq for the given duration.
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:  freq,
		total: rate.N(duration),
		wave:  wave,
		rate:  rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.total > 0 && o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a finite streamer.
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewFade shapes s so it ramps up over attack and down over release.
func NewFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.attack > 0 && f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if remaining := f.total - f.position; f.release > 0 && remaining < f.release {
			vol = math.Max(float64(remaining)/float64(f.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// volume scales a streamer linearly. Zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is a shaped tone with short attack and release.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewFade(NewTone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// LostCue is a falling three-note phrase played on death.
func LostCue(rate beep.SampleRate) beep.Streamer {
	return volume(beep.Seq(
		note(392.00, 140*time.Millisecond, WaveSaw, rate),
		note(311.13, 140*time.Millisecond, WaveSaw, rate),
		note(196.00, 320*time.Millisecond, WaveSaw, rate),
	), 0.35)
}

// UnlockCue is a rising two-note chime for a new palette color or level.
func UnlockCue(rate beep.SampleRate) beep.Streamer {
	return volume(beep.Seq(
		note(987.77, 80*time.Millisecond, WaveSquare, rate),
		note(1318.51, 220*time.Millisecond, WaveSquare, rate),
	), 0.2)
}

// BlockCue is a short high click.
func BlockCue(rate beep.SampleRate) beep.Streamer {
	return volume(note(1760, 40*time.Millisecond, WaveSine, rate), 0.3)
}

// HitCue is a short low buzz.
func HitCue(rate beep.SampleRate) beep.Streamer {
	return volume(note(110, 150*time.Millisecond, WaveSaw, rate), 0.3)
}

// BossCue is a warning siren when the camping penalty fires.
func BossCue(rate beep.SampleRate) beep.Streamer {
	return volume(beep.Seq(
		note(880, 120*time.Millisecond, WaveSquare, rate),
		note(660, 120*time.Millisecond, WaveSquare, rate),
		note(880, 120*time.Millisecond, WaveSquare, rate),
	), 0.2)
}

// musicLoop is an endless bass line with a kick on every beat.
type musicLoop struct {
	rate  beep.SampleRate
	pos   int
	beat  int
	notes []float64
}

// NewMusic returns the background track. It never ends.
func NewMusic(rate beep.SampleRate) beep.Streamer {
	return &musicLoop{
		rate:  rate,
		beat:  rate.N(400 * time.Millisecond),
		notes: []float64{110, 110, 130.81, 98},
	}
}

func (m *musicLoop) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := m.rate.N(90 * time.Millisecond)
	for i := range samples {
		beatPos := m.pos % m.beat
		bar := (m.pos / m.beat) % (len(m.notes) * 2)
		t := float64(m.pos) / float64(m.rate)

		kick := 0.0
		if beatPos < kickLen {
			env := 1 - float64(beatPos)/float64(kickLen)
			bt := float64(beatPos) / float64(m.rate)
			kick = 0.35 * env * math.Sin(2*math.Pi*60*(1+2*env)*bt)
		}
		bass := 0.12 * math.Sin(2*math.Pi*m.notes[bar/2]*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		m.pos++
	}
	return len(samples), true
}

func (m *musicLoop) Err() error { return nil }
