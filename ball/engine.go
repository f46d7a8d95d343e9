package ball

import "math"

// Move integrates the ball position by one tick of velocity.
func (b *Ball) Move() {
	b.X += b.Vx
	b.Y += b.Vy
}

// BounceWalls reflects the ball off the left and right walls. The position is
// clamped so the ball never overlaps a wall and vx always points back inward.
// It reports whether a wall was touched.
func (b *Ball) BounceWalls() bool {
	if b.X-Radius <= 0 {
		b.X = Radius
		b.Vx = math.Abs(b.Vx)
		return true
	}
	if b.X+Radius >= CourtWidth {
		b.X = CourtWidth - Radius
		b.Vx = -math.Abs(b.Vx)
		return true
	}
	return false
}

// Accelerate bumps the speed after a paddle hit, capped at MaxSpeed.
func (b *Ball) Accelerate() {
	b.Speed = math.Min(b.Speed+SpeedStep, MaxSpeed)
}

// Reset parks the ball at the centre with no velocity and serve speed.
func (b *Ball) Reset() {
	b.X = CenterX
	b.Y = CenterY
	b.Vx = 0
	b.Vy = 0
	b.Speed = ServeSpeed
}

// Serve resets the ball and launches it vertically in direction (+1 is down
// toward the bottom paddle, -1 is up) with a horizontal component in [-1, 1).
func (b *Ball) Serve(direction int, j Jitter) {
	b.Reset()
	b.Vx = (j.Float64() - 0.5) * 2
	b.Vy = float64(direction) * ServeSpeed
}

// PastBottom and PastTop report whether the ball crossed a goal line.
func (b *Ball) PastBottom() bool { return b.Y > BottomGoalLine }

func (b *Ball) PastTop() bool { return b.Y < TopGoalLine }
