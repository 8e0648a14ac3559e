package ledeffects

import (
	"sync"
	"time"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

type subs struct {
	subs []chan *model.AudioTrigger
	sync.Mutex
}

// send delivers a message to a single subscriber, subscribers that have
// closed their channel are reported as dead
func send(ch chan *model.AudioTrigger, msg *model.AudioTrigger, wait time.Duration) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("subscription dropped failed to send")
			alive = false
		}
	}()

	select {
	case ch <- msg:
	case <-time.After(wait):
		logger.Debug("subscription failed to send")
	}
	return true
}

// startFanOut implement a broadcast mechanisim for accepting audio trigger
// messages and relaying then to subscribers.  The function returns a single
// channel to which audio updates get sent and, a channel that can be used to
// add listeners.  Each subscriber receives its own copy of the message
//
func startFanOut(wait time.Duration, quitC <-chan struct{}) (inC chan *model.AudioTrigger, subC chan chan *model.AudioTrigger) {

	inC = make(chan *model.AudioTrigger, 1)
	subC = make(chan chan *model.AudioTrigger, 1)

	subscribers := &subs{
		subs: []chan *model.AudioTrigger{},
	}

	go func(quitC <-chan struct{}) {
		defer logger.Debug("fanout stopped")
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					subscribers.Lock()
					subscribers.subs = append(subscribers.subs, sub)
					subscribers.Unlock()
					logger.Debug("subscription added")
				}
			case msg := <-inC:
				// The subscriptions are notified of a message and are groomed out
				// on unrecoverable failures using https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
				subscribers.Lock()
				newSubs := subscribers.subs[:0]
				for _, ch := range subscribers.subs {
					if send(ch, msg.Snapshot(), wait) {
						newSubs = append(newSubs, ch)
					}
				}
				subscribers.subs = newSubs
				subscribers.Unlock()
			}
		}
	}(quitC)

	return inC, subC
}
