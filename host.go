package ledeffects

// This file contains the host frame loop.  The host owns the panel, keeps one
// effect instance active at a time and steps it once per frame.  Effects that
// set a timeout are replaced by the next effect in the playlist once the
// timeout expires, a fresh instance is created for every activation

import (
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

type Host struct {
	// Timing turns on the loop duration logging of each instance
	Timing bool

	cfg      *Config
	registry *Registry
	panel    *Panel
	playlist []string
	next     int

	current *Instance
	started time.Time
	now     func() time.Time
}

func NewHost(cfg *Config, registry *Registry, panel *Panel, playlist []string) (host *Host, err errors.Error) {
	if len(playlist) == 0 {
		return nil, errors.New("host needs at least one effect").With("stack", stack.Trace().TrimRuntime())
	}

	known := map[string]struct{}{}
	for _, name := range registry.Names() {
		known[name] = struct{}{}
	}
	for _, name := range playlist {
		if _, isPresent := known[name]; !isPresent {
			return nil, errors.New("effect not registered").With("effect", name).With("stack", stack.Trace().TrimRuntime())
		}
	}

	return &Host{
		cfg:      cfg,
		registry: registry,
		panel:    panel,
		playlist: append([]string{}, playlist...),
		now:      time.Now,
	}, nil
}

// Current returns the active instance, nil before the first activation
func (host *Host) Current() *Instance {
	return host.current
}

// Activate stops the current effect and starts the next one in the playlist
func (host *Host) Activate() (err errors.Error) {
	if host.current != nil {
		host.current.Dispatch(ActionExit, host.panel)
		host.current = nil
	}

	name := host.playlist[host.next]
	host.next = (host.next + 1) % len(host.playlist)

	inst, err := host.registry.New(name, host.cfg)
	if err != nil {
		return err
	}
	inst.Timing = host.Timing

	host.panel.PixPos = 0
	host.panel.Timeout = 0
	host.panel.DimAll = false

	if err = inst.Dispatch(ActionInit, host.panel); err != nil {
		return err
	}
	host.current = inst
	host.started = host.now()
	return nil
}

// Frame renders a single frame, trigger is the newest audio state and may be
// nil when none arrived since the last frame
func (host *Host) Frame(trigger *model.AudioTrigger) (err errors.Error) {
	if host.current != nil && host.panel.Timeout > 0 {
		if host.now().Sub(host.started) >= time.Duration(host.panel.Timeout)*time.Second {
			logger.Info("effect timed out", "effect", host.current.Name, "timeout", host.panel.Timeout)
			host.current.Dispatch(ActionExit, host.panel)
			host.current = nil
		}
	}
	if host.current == nil {
		if err = host.Activate(); err != nil {
			return err
		}
	}

	// The effect holds a reference to the panel audio state so it is
	// updated in place
	if trigger != nil {
		*host.panel.Audio = *trigger
	}

	return host.current.Dispatch(ActionLoop, host.panel)
}

// Stop exits the active effect
func (host *Host) Stop() {
	if host.current != nil {
		host.current.Dispatch(ActionExit, host.panel)
		host.current = nil
	}
}

// Run steps the effects once every frame period until quitC is closed
func (host *Host) Run(frame time.Duration, triggerC <-chan *model.AudioTrigger, errorC chan<- errors.Error, quitC <-chan struct{}) {

	defer host.Stop()

	tick := time.NewTicker(frame)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			// Only the most recent audio state is of interest if we are backed up
			var trigger *model.AudioTrigger
			for drained := false; !drained; {
				select {
				case msg := <-triggerC:
					if msg != nil {
						trigger = msg
					}
				default:
					drained = true
				}
			}

			if err := host.Frame(trigger); err != nil {
				reportError(err, errorC)
			}
		case <-quitC:
			return
		}
	}
}
