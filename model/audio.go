package model

// AudioTrigger is the state published by the audio analysis producer and
// consumed by the effects once per frame.
//
// Level is the normalized amplitude (0..1), LevelAverage the running mean of
// Level, Fade a 0..1 brightness multiplier that effects may overwrite for the
// frame they render and IsNoisy flags a transient, or attack, in the signal
type AudioTrigger struct {
	Level        float64 `json:"level"`
	LevelAverage float64 `json:"levelAverage"`
	Fade         float64 `json:"fade"`
	IsNoisy      bool    `json:"isNoisy"`
}

// Snapshot returns a copy of the trigger state suitable for handing to
// another goroutine
func (atd *AudioTrigger) Snapshot() (cpy *AudioTrigger) {
	if atd == nil {
		return &AudioTrigger{}
	}
	cpy = &AudioTrigger{}
	*cpy = *atd
	return cpy
}
