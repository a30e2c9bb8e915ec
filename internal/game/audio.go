package game

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"arena/internal/config"
	"arena/internal/geom"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Engine hum.
const (
	EngineIdleHz  = 48.0
	EngineTopHz   = 190.0
	EngineTopSpd  = 2500.0
	EngineGlide   = 6.0 // pitch follow rate per second
	EngineVolume  = 0.5
	MaxLandingSpd = 2500.0
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundJump SoundKind = iota
	SoundLanding
	SoundReset
)

// AudioSystem plays the engine loop and one-shot effects.
type AudioSystem struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	speed  func() float64
	log    zerolog.Logger

	mu     sync.Mutex
	engine oto.Player
	closed bool
}

// NewAudio opens the output device. speed is polled from the audio goroutine
// and must be safe for concurrent use.
func NewAudio(cfg config.Audio, speed func() float64, logger zerolog.Logger) (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a := &AudioSystem{
		ctx:    ctx,
		ready:  ready,
		volume: cfg.Volume,
		speed:  speed,
		log:    logger,
	}
	go func() {
		<-ready
		a.startEngine()
	}()
	return a, nil
}

func (a *AudioSystem) startEngine() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	player := a.ctx.NewPlayer(newEngineReader(a.speed))
	player.SetVolume(a.volume * EngineVolume)
	player.Play()
	a.engine = player
	a.log.Debug().Msg("engine loop started")
}

// Play plays a one-shot effect. gain is clamped to [0,1].
func (a *AudioSystem) Play(kind SoundKind, gain float64) {
	if a == nil || gain <= 0 {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := generateSound(kind, gain)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume * geom.ClampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			a.log.Debug().Err(err).Msg("close effect player")
		}
	}()
}

func (a *AudioSystem) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.engine != nil {
		a.engine.Close()
		a.engine = nil
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader synthesises an endless hum whose pitch glides toward a target
// set by the vehicle's speed.
type engineReader struct {
	speed  func() float64
	freq   float64
	phase  float64
	phase2 float64
	seed   uint64
	lp     float64
}

func newEngineReader(speed func() float64) *engineReader {
	return &engineReader{speed: speed, freq: EngineIdleHz, seed: 0xE261}
}

// engineTarget maps a horizontal speed to the hum frequency.
func engineTarget(speed float64) float64 {
	k := geom.ClampF(speed/EngineTopSpd, 0, 1)
	return EngineIdleHz + (EngineTopHz-EngineIdleHz)*math.Sqrt(k)
}

func (e *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	target := engineTarget(e.speed())
	glide := 1 - math.Exp(-EngineGlide/SampleRate)
	for i := 0; i < samples; i++ {
		e.freq += (target - e.freq) * glide
		e.phase = math.Mod(e.phase+e.freq/SampleRate, 1)
		e.phase2 = math.Mod(e.phase2+e.freq*0.5/SampleRate, 1)
		e.lp = e.lp*0.97 + lcg(&e.seed)*0.03

		load := (e.freq - EngineIdleHz) / (EngineTopHz - EngineIdleHz)
		s := math.Sin(2*math.Pi*e.phase)*0.35 +
			triWave(e.phase2)*0.25 +
			math.Sin(2*math.Pi*e.phase*3)*0.08*load +
			e.lp*0.6
		putStereoF32(p, i, softSat(s*(0.6+0.4*load)))
	}
	return samples * 8, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func triWave(phase float64) float64 {
	return 4*math.Abs(phase-math.Floor(phase+0.5)) - 1
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind, gain float64) []byte {
	switch kind {
	case SoundJump:
		return genJump()
	case SoundLanding:
		return genLanding(gain)
	case SoundReset:
		return genReset()
	}
	return nil
}

// genJump: rising FM chirp.
func genJump() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.3, 0.3)
		freq := 220 + 520*p*p
		s := fm(t, freq, 2.0, 2.5*env) * env * 0.45
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLanding: low thump plus filtered noise; harder impacts ring longer.
func genLanding(gain float64) []byte {
	g := geom.ClampF(gain, 0, 1)
	n := int((0.12 + 0.18*g) * SampleRate)
	buf := makeBuf(n)
	seed := uint64(40961)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		lp = lp*0.9 + lcg(&seed)*0.1
		thump := fm(t, 60+30*g, 0.5, 1.5) * math.Exp(-p*12)
		s := (lp*0.5 + thump*0.7) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genReset: crisp click + brief falling tone.
func genReset() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// landingGain maps an impact speed to an effect gain.
func landingGain(impact float64) float64 {
	return geom.ClampF(impact/MaxLandingSpd, 0, 1)
}
