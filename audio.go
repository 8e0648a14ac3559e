package ledeffects

// This module is responsible for producing the audio trigger state that
// drives the effects.
//
// Audio is read from a WAV file, any sample rate and channel count supported
// by the decoder, and is analyzed one frame period at a time.  The file is
// looped when it runs out so that a short clip can drive the panel
// indefinitely.  Each analyzed block results in a new trigger state being
// published to the fanout

import (
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	dsptime "github.com/cwbudde/algo-dsp/stats/time"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// Analyzer converts blocks of stereo samples into audio trigger state
type Analyzer struct {
	cfg   AudioConfig
	state model.AudioTrigger
	mono  []float64
}

func NewAnalyzer(cfg AudioConfig) (analyzer *Analyzer) {
	return &Analyzer{
		cfg:   cfg,
		state: model.AudioTrigger{Fade: 1.0},
	}
}

// Process analyzes a single block of samples.  The level is the RMS of the
// block scaled by the configured gain, the block is noisy when its level
// jumps above the running average by the noise ratio
func (analyzer *Analyzer) Process(block [][2]float64) (trigger model.AudioTrigger) {
	if len(block) == 0 {
		return analyzer.state
	}

	if cap(analyzer.mono) < len(block) {
		analyzer.mono = make([]float64, len(block))
	}
	mono := analyzer.mono[:len(block)]
	for i, s := range block {
		mono[i] = (s[0] + s[1]) / 2.0
	}

	level := clamp01(dsptime.RMS(mono) * analyzer.cfg.Gain)
	average := analyzer.state.LevelAverage

	noisy := level > analyzer.cfg.NoiseFloor && level > average*analyzer.cfg.NoiseRatio

	fade := analyzer.state.Fade
	if noisy {
		fade = 1.0
	} else {
		fade = clamp01(fade - analyzer.cfg.FadeStep)
	}

	analyzer.state = model.AudioTrigger{
		Level:        level,
		LevelAverage: average + analyzer.cfg.AverageWeight*(level-average),
		Fade:         fade,
		IsNoisy:      noisy,
	}

	if logger.IsTrace() {
		logger.Trace("audio block", "samples", len(block), "peak", dsptime.Peak(mono), "level", level,
			"average", analyzer.state.LevelAverage, "noisy", noisy, "fade", fade)
	}
	return analyzer.state
}

// Stream pulls the next block from the streamer and analyzes it, ok is false
// once the streamer is drained
func (analyzer *Analyzer) Stream(streamer beep.Streamer, samples [][2]float64) (trigger model.AudioTrigger, ok bool) {
	n, ok := streamer.Stream(samples)
	return analyzer.Process(samples[:n]), ok && n == len(samples)
}

func reportError(err errors.Error, errorC chan<- errors.Error) {
	if errorC == nil {
		logger.Warn(err.Error())
		return
	}
	select {
	case errorC <- err:
	case <-time.After(20 * time.Millisecond):
		logger.Warn(err.Error())
	}
}

// StartAudio opens a WAV file and publishes an audio trigger state on
// triggerC for every frame period of audio, paced in real time
func StartAudio(fp string, cfg AudioConfig, frame time.Duration, triggerC chan<- *model.AudioTrigger, errorC chan<- errors.Error, quitC <-chan struct{}) (err errors.Error) {

	file, errGo := os.Open(fp)
	if errGo != nil {
		return errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}

	streamer, format, errGo := wav.Decode(file)
	if errGo != nil {
		file.Close()
		return errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}

	blockSize := format.SampleRate.N(frame)
	if blockSize < 1 {
		blockSize = 1
	}

	logger.Info("audio started", "file", fp, "rate", int(format.SampleRate), "channels", format.NumChannels, "block", blockSize)

	go runAudio(fp, streamer, NewAnalyzer(cfg), blockSize, frame, triggerC, errorC, quitC)

	return nil
}

func runAudio(fp string, streamer beep.StreamSeekCloser, analyzer *Analyzer, blockSize int, frame time.Duration,
	triggerC chan<- *model.AudioTrigger, errorC chan<- errors.Error, quitC <-chan struct{}) {

	defer streamer.Close()

	samples := make([][2]float64, blockSize)

	tick := time.NewTicker(frame)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
		case <-quitC:
			return
		}

		trigger, ok := analyzer.Stream(streamer, samples)
		if !ok {
			if errGo := streamer.Err(); errGo != nil {
				reportError(errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime()), errorC)
				return
			}
			if errGo := streamer.Seek(0); errGo != nil {
				reportError(errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime()), errorC)
				return
			}
		}

		select {
		case triggerC <- &trigger:
		case <-quitC:
			return
		}
	}
}
