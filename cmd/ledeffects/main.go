package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/mgutz/logxi" // Using a forked copy of this package results in build issues

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"

	ledeffects "github.com/mamuesp-libs/ledeffects-symmetric-bar"
	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
	"github.com/mamuesp-libs/ledeffects-symmetric-bar/version"
)

var (
	logger = logxi.New("ledeffects")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	configFile = flag.String("config", "", "YAML file holding the panel, audio and effect settings")
	opcServer  = flag.String("opc", "", "Address of the fadecandy OPC server, for example localhost:7890")
	opcChannel = flag.Uint("opc-channel", 0, "OPC channel the panel is mapped to by the fcserver")
	wavFile    = flag.String("wav", "", "WAV file analyzed to drive the audio reactive effects")
	preview    = flag.Bool("term", false, "Preview the panel inside this terminal")
	logFile    = flag.String("log", "", "File receiving the log output while the terminal preview is running, discarded when empty")
	timing     = flag.Bool("timing", false, "Log the duration of every effect loop at debug level")
	effects    = flag.String("effects", ledeffects.SymmetricBarName, "Comma separated playlist of effects")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       audio → effects → OPC (ledeffects)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "ledeffects renders audio reactive animations onto LED matrix panels driven by fadecandy boards")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Registered effects:", strings.Join(ledeffects.Effects.Names(), ", "))
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	// Turn off logging regardless of the default levels if the verbose flag is not enabled.
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
		ledeffects.SetLogLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(-1)
	}
}

func run() (err errors.Error) {
	cfg, err := ledeffects.LoadConfig(*configFile)
	if err != nil {
		return err
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 10)
	msgC := make(chan string, 10)

	panel := ledeffects.NewPanel(cfg.Panel)

	if len(*opcServer) != 0 {
		sink, err := ledeffects.NewOPCSink(*opcServer, uint8(*opcChannel))
		if err != nil {
			return err
		}
		panel.AddSink(sink)
	}

	if *preview {
		// The terminal is in use by the preview so logging moves to a file
		// and messages are dropped
		restoreLogs, err := redirectLogs(*logFile, *verbose)
		if err != nil {
			return err
		}
		defer restoreLogs()
		msgV = nil

		sink, err := ledeffects.OpenTerminal()
		if err != nil {
			return err
		}
		defer sink.Close()
		panel.AddSink(sink)
	}

	go runTUI(msgC, errorC, quitC)

	gw := &ledeffects.Gateway{}
	_, subscribeC, err := gw.Start(*wavFile, cfg, errorC, quitC)
	if err != nil {
		return err
	}

	if *verbose {
		go runMonitoring(subscribeC, quitC)
	}

	host, err := ledeffects.NewHost(cfg, ledeffects.Effects, panel, strings.Split(*effects, ","))
	if err != nil {
		return err
	}
	host.Timing = *timing

	triggerC := make(chan *model.AudioTrigger, 1)
	subscribeC <- triggerC

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopC
		msgC <- "stopping\n"
		close(quitC)
	}()

	host.Run(time.Second/time.Duration(cfg.Panel.FPS), triggerC, errorC, quitC)
	return nil
}
