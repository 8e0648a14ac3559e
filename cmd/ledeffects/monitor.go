package main

import (
	"fmt"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// This file implements a monitor that subscribe to and displays
// the audio trigger states using event subscription

func runMonitoring(subscribeC chan chan *model.AudioTrigger, quitC <-chan struct{}) {

	triggerC := make(chan *model.AudioTrigger, 1)
	subscribeC <- triggerC

	for {
		select {
		case msg := <-triggerC:
			logger.Debug(fmt.Sprintf("%+v", msg))
		case <-quitC:
			return
		}
	}
}
