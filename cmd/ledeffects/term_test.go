package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectLogsToFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "ledeffects.log")

	previous := logger
	restore, err := redirectLogs(fp, true)
	require.Nil(t, err)

	savedMsgV := msgV
	msgV = nil
	defer func() { msgV = savedMsgV }()

	errorC := make(chan errors.Error)
	quitC := make(chan struct{})
	doneC := make(chan struct{})
	go func() {
		defer close(doneC)
		msgWatch(make(chan string), errorC, quitC)
	}()

	errorC <- errors.New("opc server went away").With("stack", stack.Trace().TrimRuntime())
	close(quitC)

	select {
	case <-doneC:
	case <-time.After(time.Second):
		t.Fatal("message watcher did not stop")
	}

	restore()
	assert.True(t, logger == previous, "logger restored")

	data, errGo := os.ReadFile(fp)
	require.NoError(t, errGo)
	assert.Contains(t, string(data), "opc server went away")
}

func TestRedirectLogsDiscard(t *testing.T) {
	restore, err := redirectLogs("", true)
	require.Nil(t, err)
	defer restore()

	assert.True(t, logger.IsDebug())
}

func TestRedirectLogsBadFile(t *testing.T) {
	previous := logger
	_, err := redirectLogs(filepath.Join(t.TempDir(), "missing", "ledeffects.log"), false)
	assert.NotNil(t, err)
	assert.True(t, logger == previous)
}
