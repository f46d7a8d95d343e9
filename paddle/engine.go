package paddle

import (
	"github.com/mo-shahab/duel-pong/ball"
)

// Paddle geometry on the normalized court.
const (
	Width   = 18.0
	Height  = 2.0
	BottomY = 92.0
	TopY    = 8.0

	minX = Width / 2
	maxX = ball.CourtWidth - Width/2

	// fraction of the ball speed given to the horizontal component at the
	// paddle edge
	spin = 0.8
)

// Side tells which baseline a paddle guards.
type Side int

const (
	Bottom Side = iota
	Top
)

type Paddle struct {
	X     float64
	Y     float64
	Width float64
	Score int
	side  Side
}

// New returns a centred paddle for the given side with a zero score.
func New(side Side) Paddle {
	y := BottomY
	if side == Top {
		y = TopY
	}
	return Paddle{X: ball.CenterX, Y: y, Width: Width, side: side}
}

func (p *Paddle) Side() Side { return p.side }

// Clamp keeps x inside [Width/2, 100-Width/2].
func Clamp(x float64) float64 {
	if x < minX {
		return minX
	}
	if x > maxX {
		return maxX
	}
	return x
}

// MoveTo sets the paddle position, clamped to the court.
func (p *Paddle) MoveTo(x float64) {
	p.X = Clamp(x)
}

// Collide resolves a hit between b and the paddle. Only a ball travelling
// toward the paddle can hit it. On a hit the ball is snapped to the paddle
// surface, sped up, and sent back with an angle taken from where it struck.
func (p *Paddle) Collide(b *ball.Ball) bool {
	half := p.Width / 2

	switch p.side {
	case Bottom:
		if b.Vy <= 0 {
			return false
		}
	case Top:
		if b.Vy >= 0 {
			return false
		}
	}

	if b.Y+ball.Radius < p.Y-Height/2 || b.Y-ball.Radius > p.Y+Height/2 {
		return false
	}
	if b.X < p.X-half || b.X > p.X+half {
		return false
	}

	offset := (b.X - p.X) / half
	b.Accelerate()
	b.Vx = offset * b.Speed * spin

	if p.side == Bottom {
		b.Y = p.Y - Height/2 - ball.Radius
		b.Vy = -b.Speed
	} else {
		b.Y = p.Y + Height/2 + ball.Radius
		b.Vy = b.Speed
	}
	return true
}
