package ledeffects

// This module wires the audio producer to its consumers.  Audio trigger states
// are broadcast so that the host frame loop and any monitors see every update

import (
	"time"

	"github.com/karlmutch/errors"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

type Gateway struct {
}

// Start creates the broadcast channel and, when a WAV file is given, starts
// analyzing it.  Without audio the returned inC can be fed by the caller
func (*Gateway) Start(wavPath string, cfg *Config, errorC chan<- errors.Error, quitC <-chan struct{}) (inC chan *model.AudioTrigger, subscribeC chan chan *model.AudioTrigger, err errors.Error) {

	frame := time.Second / time.Duration(cfg.Panel.FPS)

	inC, subscribeC = startFanOut(frame, quitC)

	if len(wavPath) != 0 {
		if err = StartAudio(wavPath, cfg.Audio, frame, inC, errorC, quitC); err != nil {
			return nil, nil, err
		}
	}

	return inC, subscribeC, nil
}
