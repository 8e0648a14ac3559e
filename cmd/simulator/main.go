package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mgutz/logxi"

	ledeffects "github.com/mamuesp-libs/ledeffects-symmetric-bar"
	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

var (
	listen     = flag.String("listen", ":8080", "Address to bind to")
	scriptPath = flag.String("script", "", "File of audio levels, one per frame, a trailing ! marks the frame as noisy")
	configFile = flag.String("config", "", "YAML file holding the panel and effect settings")
	effect     = flag.String("effect", ledeffects.SymmetricBarName, "Effect to run")
)

// frameStore is a sink that keeps the last frame for the HTTP handlers
type frameStore struct {
	frame *ledeffects.Frame
	sync.Mutex
}

func (store *frameStore) Send(frame *ledeffects.Frame) (err errors.Error) {
	store.Lock()
	store.frame = frame
	store.Unlock()
	return nil
}

func (store *frameStore) last() (frame *ledeffects.Frame) {
	store.Lock()
	defer store.Unlock()
	return store.frame
}

var (
	// create Logger interface
	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stdout), "ledeffects-simulator")

	frames = &frameStore{}
)

func main() {

	flag.Parse()

	cfg, err := ledeffects.LoadConfig(*configFile)
	if err != nil {
		logxi.Fatal(err.Error())
		os.Exit(-1)
	}

	script := []model.AudioTrigger{{Fade: 1.0}}
	if len(*scriptPath) != 0 {
		f, errGo := os.Open(*scriptPath)
		if errGo != nil {
			logxi.Fatal(errGo.Error())
			os.Exit(-1)
		}
		script, err = parseScript(f)
		f.Close()
		if err != nil {
			logxi.Fatal(err.Error())
			os.Exit(-1)
		}
	}

	panel := ledeffects.NewPanel(cfg.Panel)
	panel.AddSink(frames)

	host, err := ledeffects.NewHost(cfg, ledeffects.Effects, panel, []string{*effect})
	if err != nil {
		logxi.Fatal(err.Error())
		os.Exit(-1)
	}

	// Run the effect using the scripted audio levels as a service function
	//
	go playScript(host, script, time.Second/time.Duration(cfg.Panel.FPS))

	http.HandleFunc("/frame", serveFrame)
	http.HandleFunc("/", serveText)

	if errGo := http.ListenAndServe(*listen, nil); errGo != nil {
		logW.Warn(errGo.Error())
	}
}

// parseScript reads one audio level per line, blank lines and lines starting
// with # are skipped
//
func parseScript(r io.Reader) (script []model.AudioTrigger, err errors.Error) {
	script = []model.AudioTrigger{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		noisy := strings.HasSuffix(line, "!")
		line = strings.TrimSpace(strings.TrimSuffix(line, "!"))

		level, errGo := strconv.ParseFloat(line, 64)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("line", lineNum).With("stack", stack.Trace().TrimRuntime())
		}
		script = append(script, model.AudioTrigger{
			Level:   level,
			Fade:    1.0,
			IsNoisy: noisy,
		})
	}
	if errGo := scanner.Err(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if len(script) == 0 {
		return nil, errors.New("audio script is empty").With("stack", stack.Trace().TrimRuntime())
	}

	// Running average over the script so the monitor sees realistic values
	avg := 0.0
	for i := range script {
		avg += 0.05 * (script[i].Level - avg)
		script[i].LevelAverage = avg
	}
	return script, nil
}

func playScript(host *ledeffects.Host, script []model.AudioTrigger, frame time.Duration) {
	tick := time.NewTicker(frame)
	defer tick.Stop()

	for i := 0; ; i = (i + 1) % len(script) {
		<-tick.C

		trigger := script[i]
		if err := host.Frame(&trigger); err != nil {
			logW.Warn(err.Error())
		}
	}
}

func serveFrame(w http.ResponseWriter, r *http.Request) {
	frame := frames.last()
	if frame == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if errGo := json.NewEncoder(w).Encode(frame); errGo != nil {
		logW.Warn(errGo.Error())
	}
}

// serveText renders the frame as rows of hex colors
func serveText(w http.ResponseWriter, r *http.Request) {
	frame := frames.last()
	if frame == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, renderText(frame))
}

func renderText(frame *ledeffects.Frame) string {
	sb := strings.Builder{}
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			c := frame.At(col, row)
			if col != 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02X%02X%02X", c.R, c.G, c.B)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
