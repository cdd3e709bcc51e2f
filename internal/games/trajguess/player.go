package trajguess

import "math"

// Result is the outcome of one submitted guess.
type Result struct {
	RoundID    string
	Round      int // 1-based round number within the match
	Steps      int
	Similarity float64
	Score      float64
	Elapsed    float64 // seconds spent guessing
}

// Player is one seat of a match.
type Player struct {
	ID           int
	Name         string
	CurrentScore float64 // score of the latest round
	HighScore    float64 // best round score, only ever raised
	TimeTaken    float64 // seconds spent guessing across rounds
	Total        float64
	Results      []Result
}

// Record adds a finished round to the player's history.
func (p *Player) Record(r Result) {
	p.Results = append(p.Results, r)
	p.CurrentScore = r.Score
	p.TimeTaken += r.Elapsed
	p.Total += r.Score
	p.UpdateHighScore(r.Score)
}

// UpdateHighScore raises the high score to score if it is higher.
// It reports whether the high score changed.
func (p *Player) UpdateHighScore(score float64) bool {
	if score <= p.HighScore {
		return false
	}
	p.HighScore = score
	return true
}

// Points returns the rounded match total used for score tables.
func (p *Player) Points() int {
	return int(math.Round(p.Total))
}

// Best returns the player's best round, or false before any round.
func (p *Player) Best() (Result, bool) {
	if len(p.Results) == 0 {
		return Result{}, false
	}
	best := p.Results[0]
	for _, r := range p.Results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}
