// game/engine.go
package game

// Step advances s by one tick. It is a no-op unless the match is playing.
//
// Order: integrate, bounce off the side walls, resolve each paddle, then
// check the goal lines. A goal ends the tick immediately; the caller never
// sees a ball beyond a goal line with the match still playing.
func Step(s *State) Outcome {
	if s.Status != StatusPlaying {
		return Outcome{Kind: Idle}
	}

	b := &s.Ball
	b.Move()
	b.BounceWalls()

	// each paddle only reacts to a ball moving toward it, so at most one hits
	s.Player1.Collide(b)
	s.Player2.Collide(b)

	var scorer Slot
	switch {
	case b.PastBottom():
		scorer = Player2
		s.NextServe = -1
	case b.PastTop():
		scorer = Player1
		s.NextServe = 1
	default:
		return Outcome{Kind: Rally}
	}

	p := s.Paddle(scorer)
	p.Score++
	s.LastScorer = scorer

	if p.Score >= s.MaxScore {
		s.Status = StatusFinished
		s.Winner = scorer
		return Outcome{Kind: Win, Scorer: scorer}
	}

	b.Reset()
	s.Status = StatusPaused
	s.PauseReason = PauseGoal
	return Outcome{Kind: Goal, Scorer: scorer}
}
