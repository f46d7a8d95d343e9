package ball

// Court and ball constants. The court is normalized to 0..100 on both axes.
const (
	CourtWidth = 100.0
	CenterX    = 50.0
	CenterY    = 50.0

	Radius     = 1.5
	ServeSpeed = 1.5
	MaxSpeed   = 5.0
	SpeedStep  = 0.15

	// a goal is scored once the ball is this far past either baseline
	BottomGoalLine = 105.0
	TopGoalLine    = -5.0
)

type Ball struct {
	X     float64
	Y     float64
	Vx    float64
	Vy    float64
	Speed float64
}

// Jitter supplies the random horizontal component of a serve.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Jitter interface {
	Float64() float64
}

// New returns a ball resting at the centre of the court.
func New() Ball {
	return Ball{X: CenterX, Y: CenterY, Speed: ServeSpeed}
}
