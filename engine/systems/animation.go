package systems

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/flagpole/engine/math"
)

const (
	DefaultWaveAmplitude float32 = 0.5
	DefaultWaveSpeed     float32 = 0.8
	DefaultWaveFrequency float32 = 3.0
)

// WaveAnimator displaces the z coordinate of a vertex buffer with a sine
// wave travelling along x:
//
//	z = x * Amplitude * sin(Speed*t + Frequency*x)
//
// The wave amplitude grows with x, so vertices at x=0 (the pole side of the
// flag) never move.
type WaveAnimator struct {
	Amplitude float32
	Speed     float32
	Frequency float32
}

// NewWaveAnimator returns an animator with the default flag wave.
func NewWaveAnimator() *WaveAnimator {
	return &WaveAnimator{
		Amplitude: DefaultWaveAmplitude,
		Speed:     DefaultWaveSpeed,
		Frequency: DefaultWaveFrequency,
	}
}

// Animate rewrites Position.Z of every vertex in place for time t (seconds
// since start). Position.X and Position.Y and the colour are left untouched.
func (w *WaveAnimator) Animate(vertices []math.Vertex, t float32) {
	phase := w.Speed * t
	for i := range vertices {
		x := vertices[i].Position.X
		vertices[i].Position.Z = x * w.Amplitude * math32.Sin(phase+w.Frequency*x)
	}
}

var defaultWave = NewWaveAnimator()

// AnimateFlag applies the default flag wave to vertices at time t.
func AnimateFlag(vertices []math.Vertex, t float32) {
	defaultWave.Animate(vertices, t)
}
