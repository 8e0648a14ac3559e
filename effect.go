package ledeffects

// This file contains the lifecycle shared by all effects.  The host selects an
// effect by name, creates a fresh instance for every activation and then
// drives it through init, any number of loop steps, and finally exit

import (
	"fmt"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mgutz/logxi"
)

var (
	logger = logxi.New("ledeffects")
)

// SetLogLevel changes the level of the logger used by the effects and the
// host, for example logxi.LevelDebug to see loop timings
func SetLogLevel(level int) {
	logger.SetLevel(level)
}

// SetLogger replaces the logger used by the package, returning the one it
// replaced.  It is intended to be called before any effect is started
func SetLogger(l logxi.Logger) (previous logxi.Logger) {
	previous, logger = logger, l
	return previous
}

// Action is the request made by the host of an effect
type Action int

const (
	ActionInit Action = iota
	ActionLoop
	ActionExit
)

func (action Action) String() string {
	switch action {
	case ActionInit:
		return "init"
	case ActionLoop:
		return "loop"
	case ActionExit:
		return "exit"
	}
	return fmt.Sprintf("action(%d)", int(action))
}

// State tracks where an instance is within its lifecycle
type State int

const (
	Uninitialized State = iota
	Active
	Stopped
)

func (state State) String() string {
	switch state {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(state))
}

// Effect is implemented by each animation.  Init builds all per activation
// state, Step renders exactly one frame and Exit releases whatever Init built.
// Exit must be safe to call more than once
type Effect interface {
	Init(panel *Panel) (err errors.Error)
	Step(panel *Panel) (err errors.Error)
	Exit(panel *Panel)
}

// Instance is a single activation of an effect
type Instance struct {
	Name string

	// Timing enables debug logging of the duration of each loop step
	Timing bool

	effect  Effect
	state   State
	maxTime time.Duration
}

func NewInstance(name string, effect Effect) (inst *Instance) {
	return &Instance{
		Name:   name,
		effect: effect,
	}
}

func (inst *Instance) State() State {
	return inst.state
}

// Dispatch is the single entry point used by the host frame loop
func (inst *Instance) Dispatch(action Action, panel *Panel) (err errors.Error) {
	switch action {
	case ActionInit:
		return inst.Init(panel)
	case ActionLoop:
		return inst.Step(panel)
	case ActionExit:
		inst.Exit(panel)
		return nil
	}
	return errors.New("unknown effect action").With("effect", inst.Name).With("action", action).With("stack", stack.Trace().TrimRuntime())
}

func (inst *Instance) Init(panel *Panel) (err errors.Error) {
	if inst.state != Uninitialized {
		return errors.New("effect instance cannot be initialized twice").With("effect", inst.Name).With("state", inst.state).With("stack", stack.Trace().TrimRuntime())
	}

	logger.Info("effect called", "effect", inst.Name, "action", ActionInit)

	if err = inst.effect.Init(panel); err != nil {
		// Release anything the effect managed to allocate before failing
		inst.effect.Exit(panel)
		inst.state = Stopped
		return err.With("effect", inst.Name)
	}
	inst.state = Active
	return nil
}

func (inst *Instance) Step(panel *Panel) (err errors.Error) {
	if inst.state != Active {
		return errors.New("effect instance is not active").With("effect", inst.Name).With("state", inst.state).With("stack", stack.Trace().TrimRuntime())
	}

	start := time.Now()

	if err = inst.effect.Step(panel); err != nil {
		return err.With("effect", inst.Name)
	}

	if inst.Timing {
		elapsed := time.Since(start)
		if elapsed > inst.maxTime {
			inst.maxTime = elapsed
		}
		logger.Debug("loop duration", "effect", inst.Name, "duration", elapsed, "max", inst.maxTime)
	}
	return nil
}

// Exit stops the instance, calling it when the instance is not active does
// nothing
func (inst *Instance) Exit(panel *Panel) {
	if inst.state == Active {
		logger.Info("effect called", "effect", inst.Name, "action", ActionExit)
		inst.effect.Exit(panel)
	}
	inst.state = Stopped
}
