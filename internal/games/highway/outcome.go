package highway

// Outcome accumulates the run score and latches game over.
type Outcome struct {
	Score int
	Over  bool
	Cause string
}

// Record folds one hero result into the run. Once over, later results are ignored.
func (o *Outcome) Record(r HeroResult) {
	if o.Over {
		return
	}
	o.Score += r.ScoreDelta
	if r.Dead {
		o.Over = true
		o.Cause = r.Cause
	}
}
