package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mgutz/logxi"

	ledeffects "github.com/mamuesp-libs/ledeffects-symmetric-bar"
)

var (
	msgV io.Writer = os.Stdout
)

func runTUI(msgC <-chan string, errC <-chan errors.Error, quitC <-chan struct{}) {
	msgWatch(msgC, errC, quitC)
}

// redirectLogs points this tool's logger and the effects logger at fp, or
// discards their output when fp is empty.  The returned function puts the
// previous loggers back and closes the log file
func redirectLogs(fp string, verbose bool) (restore func(), err errors.Error) {
	var w io.Writer = io.Discard
	var f *os.File

	if len(fp) != 0 {
		var errGo error
		if f, errGo = os.OpenFile(fp, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); errGo != nil {
			return func() {}, errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
		}
		w = f
	}

	w = logxi.NewConcurrentWriter(w)
	previous := logger
	logger = logxi.NewLogger(w, "ledeffects")
	previousEffects := ledeffects.SetLogger(logxi.NewLogger(w, "ledeffects"))

	if verbose {
		logger.SetLevel(logxi.LevelDebug)
		ledeffects.SetLogLevel(logxi.LevelDebug)
	}

	return func() {
		logger = previous
		ledeffects.SetLogger(previousEffects)
		if f != nil {
			f.Close()
		}
	}, nil
}

func msgWatch(msgsC <-chan string, errorC <-chan errors.Error, quitC <-chan struct{}) {
	for {
		select {
		case msg := <-msgsC:
			if msgV != nil {
				fmt.Fprint(msgV, msg)
			}
		case err := <-errorC:
			if msgV != nil {
				fmt.Fprintln(msgV, err.Error())
			} else {
				logger.Warn(err.Error())
			}
		case <-quitC:
			return
		}
	}
}
