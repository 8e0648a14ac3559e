package ledeffects

// This file contains the sink that forwards finished frames to a fadecandy
// server (fcserver) using the Open Pixel Control protocol.  The fcserver
// configuration maps the OPC channel onto the strands of the boards

import (
	"bytes"
	"sync"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/cnf/structhash"

	"github.com/kellydunn/go-opc"
)

type opcSender interface {
	Send(m *opc.Message) error
}

// OPCSink sends each distinct frame to an OPC server, frames identical to the
// last one sent are skipped
type OPCSink struct {
	server  string
	channel uint8
	oc      opcSender
	last    []byte
	sync.Mutex
}

// NewOPCSink connects to the fcserver at server, for example localhost:7890
func NewOPCSink(server string, channel uint8) (sink *OPCSink, err errors.Error) {
	oc := opc.NewClient()
	if errGo := oc.Connect("tcp", server); errGo != nil {
		return nil, errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime())
	}
	return newOPCSink(server, channel, oc), nil
}

func newOPCSink(server string, channel uint8, oc opcSender) (sink *OPCSink) {
	return &OPCSink{
		server:  server,
		channel: channel,
		oc:      oc,
		last:    []byte{},
	}
}

// frameMessage lays the frame out along the strip as 8 bit RGB triples
func frameMessage(frame *Frame, channel uint8) (m *opc.Message) {
	strip := frame.Strip()

	m = opc.NewMessage(channel)
	m.SetLength(uint16(len(strip) * 3))
	for i, c := range strip {
		m.SetPixelColor(i, c.R, c.G, c.B)
	}
	return m
}

func (sink *OPCSink) Send(frame *Frame) (err errors.Error) {
	sink.Lock()
	defer sink.Unlock()

	hash := structhash.Md5(frame, 1)
	if bytes.Equal(sink.last, hash) {
		return nil
	}

	if errGo := sink.oc.Send(frameMessage(frame, sink.channel)); errGo != nil {
		return errors.Wrap(errGo).With("url", sink.server).With("channel", sink.channel).With("stack", stack.Trace().TrimRuntime())
	}
	sink.last = hash
	return nil
}
