package game

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frames(t *testing.T, buf []byte) []float32 {
	t.Helper()
	require.Zero(t, len(buf)%8)
	out := make([]float32, 0, len(buf)/8)
	for i := 0; i < len(buf); i += 8 {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i+4:]))
		require.Equal(t, l, r, "frame %d", i/8)
		out = append(out, l)
	}
	return out
}

func assertInRange(t *testing.T, samples []float32) {
	t.Helper()
	for i, s := range samples {
		if s < -1 || s > 1 || math.IsNaN(float64(s)) {
			t.Fatalf("sample %d = %v outside [-1,1]", i, s)
		}
	}
}

func TestEngineTarget(t *testing.T) {
	assert.Equal(t, EngineIdleHz, engineTarget(0))
	assert.Equal(t, EngineIdleHz, engineTarget(-5))
	assert.Equal(t, EngineTopHz, engineTarget(EngineTopSpd))
	assert.Equal(t, EngineTopHz, engineTarget(10*EngineTopSpd))
	assert.Less(t, engineTarget(500), engineTarget(1000))
}

func TestEngineReader_GlidesTowardSpeed(t *testing.T) {
	speed := 0.0
	e := newEngineReader(func() float64 { return speed })
	buf := make([]byte, 1024*8)

	n, err := e.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assertInRange(t, frames(t, buf))
	assert.InDelta(t, EngineIdleHz, e.freq, 1e-9)

	speed = EngineTopSpd
	prev := e.freq
	for i := 0; i < 5; i++ {
		_, err := e.Read(buf)
		require.NoError(t, err)
		assert.Greater(t, e.freq, prev)
		assert.LessOrEqual(t, e.freq, EngineTopHz)
		prev = e.freq
	}
	assertInRange(t, frames(t, buf))

	// Partial frames are not written.
	n, err = e.Read(make([]byte, 7))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGenerateSound(t *testing.T) {
	for _, kind := range []SoundKind{SoundJump, SoundLanding, SoundReset} {
		buf := generateSound(kind, 1)
		require.NotEmpty(t, buf, "kind %d", kind)
		assertInRange(t, frames(t, buf))
	}
	assert.Nil(t, generateSound(SoundKind(99), 1))

	// Harder landings ring longer.
	assert.Greater(t, len(genLanding(1)), len(genLanding(0.1)))
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: genReset()}
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, genReset(), got)
}

func TestLandingGain(t *testing.T) {
	assert.Zero(t, landingGain(-10))
	assert.InDelta(t, 0.5, landingGain(MaxLandingSpd/2), 1e-12)
	assert.Equal(t, 1.0, landingGain(3*MaxLandingSpd))
}

func TestGroupColor(t *testing.T) {
	for g, c := range Palette.Groups {
		assert.Equal(t, c, GroupColor(g))
	}
	assert.Equal(t, Palette.Groups["wall"], GroupColor("unknown"))
	assert.Equal(t, [3]float32{1, 0, 0}, RGB{R: 255}.Vec())
	assert.Equal(t, RGB{R: 127}, RGB{R: 255}.Mul(127))
}
