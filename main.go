package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "embed"

	"github.com/pterm/pterm"
	"github.com/regginator/bruteviz/charset"
	"github.com/regginator/bruteviz/config"
	"github.com/regginator/bruteviz/pool"
	"github.com/regginator/bruteviz/runner"
)

//go:embed VERSION
var bruteVizVersion string

var defaults = config.Default()

// All command-line arguments. Anything set here wins over the -config file
var (
	ConfigPath = flag.String("config", "", "Path to a YAML config file. Flags given on the command line override its values")

	// enumeration
	Target  = flag.String("target", defaults.Target, "Target string to \"crack\", up to 10 symbols (longer input is truncated)")
	Charset = flag.String("chars", defaults.Charset, "Character set preset [demo, alpha, numeric, alphanumeric]")
	Start   = flag.String("start", "", "Start at attempt index n instead of 0")

	// animation
	Speed = flag.String("speed", fmt.Sprint(defaults.Speed), fmt.Sprintf("Speed multiplier, %d attempts/sec at 1x. The +/- keys move it between %d and %d", runner.BaseRate, minSpeed, maxSpeed))
	FPS   = flag.Int("fps", defaults.FPS, "Frames per second of the animation loop")

	// bool flags
	Headless = flag.Bool("headless", false, "No live dashboard or key bindings, print progress lines and exit when the run ends")
	Version  = flag.Bool("version", false, "Print the version and exit")

	LogFile = flag.String("log", "", "Write debug logs to this file")
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitExhausted = 2
)

// Frontend being drawn to, so the interrupt handler can clean it up
var front Frontend

func usage(exitCode int) {
	flag.Usage()
	os.Exit(exitCode)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "USAGE: %s [OPTION]...\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if *Version {
		fmt.Printf("bruteviz v%s", bruteVizVersion)
		os.Exit(exitOK)
	}

	fmt.Printf(`bruteviz v%s
Brute-force enumeration, visualized. Nothing here attacks anything.

`, bruteVizVersion)

	// PTerm ANSI formatting (mainly from the live area) can persist after ctrl+c, hook os.Interrupt and flush
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

		<-signalChan
		if front != nil {
			_ = front.Stop()
		}
		fmt.Print("\033[0m")
		os.Exit(exitOK)
	}()

	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Printf("%s\n", err)
		fmt.Println()
		usage(exitError)
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		pterm.Error.Printf("failed to open log file (-log): %s\n", err)
		os.Exit(exitError)
	}
	defer closeLog()

	r, err := runner.New(cfg.Target, cfg.Charset, logger)
	if err != nil {
		pterm.Error.Printf("invalid character set (-chars): %s\n", err)
		fmt.Println()
		usage(exitError)
	}

	if err := r.SetSpeed(cfg.Speed); err != nil {
		pterm.Error.Printf("invalid speed (-speed): %s\n", err)
		fmt.Println()
		usage(exitError)
	}

	if r.Engine().TargetLen() == 0 {
		pterm.Error.Printf("target (-target) is empty, there is nothing to enumerate\n")
		fmt.Println()
		usage(exitError)
	}

	startIndex, err := cfg.StartIndex()
	if err != nil {
		pterm.Error.Printf("invalid start index (-start): %s\n", err)
		os.Exit(exitError)
	} else if startIndex != nil {
		if err := r.Seek(startIndex); err != nil {
			pterm.Error.Printf("value of -start (%s) is not below the total number of combinations (%s)\n", startIndex, r.Engine().Total())
			os.Exit(exitError)
		}
	}

	printSummary(r)
	fmt.Println()

	sets, err := pool.New(charset.Names())
	if err != nil {
		pterm.Error.Printf("%s\n", err)
		os.Exit(exitError)
	}
	sets.Select(r.Engine().Set().Name)

	anim := &animation{
		runner:        r,
		clock:         runner.SystemClock{},
		sets:          sets,
		frameInterval: time.Second / time.Duration(cfg.FPS),
		exitOnFinish:  cfg.Headless,
	}

	var cmds chan command
	if cfg.Headless {
		anim.front = new(headlessFrontend)
	} else {
		anim.front = new(liveFrontend)
		cmds = make(chan command, 8)
		go listenKeys(cmds, logger)
	}
	front = anim.front

	if err := anim.front.Start(); err != nil {
		pterm.Error.Printf("failed to start output: %s\n", err)
		os.Exit(exitError)
	}

	r.Start(anim.clock.Now())

	// cmds stays nil when headless, and a nil channel never delivers
	state, runErr := anim.run(cmds)
	_ = anim.front.Stop()

	if runErr != nil {
		pterm.Error.Printf("%s\n", runErr)
		os.Exit(exitError)
	}

	snap := r.Snapshot()
	switch state {
	case runner.Success:
		pterm.Success.Printf("🎉 FOUND TARGET!! \"%s\" after %s attempts\n", snap.Candidate, snap.Attempts)
	case runner.Complete:
		pterm.Warning.Printf("Ran out of combinations (%s total) without a match for \"%s\"\n", snap.Total, snap.Target)
		closeLog()
		os.Exit(exitExhausted)
	default:
		pterm.Info.Printf("Stopped at attempt %s of %s (%s)\n", snap.Attempts, snap.Total, snap.State)
	}
}

// Defaults, then the -config file if any, then flags the user actually passed
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if *ConfigPath != "" {
		var err error
		cfg, err = config.Load(*ConfigPath)
		if err != nil {
			return cfg, err
		}
	}

	var overrideErr error
	flag.Visit(func(f *flag.Flag) {
		if overrideErr != nil || f.Name == "config" || f.Name == "version" {
			return
		}

		if err := cfg.Override(f.Name, f.Value.String()); err != nil {
			overrideErr = fmt.Errorf("invalid value for -%s: %w", f.Name, err)
		}
	})
	if overrideErr != nil {
		return cfg, overrideErr
	}

	return cfg, cfg.Validate()
}

// Logs go to a file at debug level, or nowhere, since stdout belongs to the dashboard
func newLogger(path string) (*pterm.Logger, func(), error) {
	if path == "" {
		return pterm.DefaultLogger.WithWriter(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := pterm.DefaultLogger.
		WithLevel(pterm.LogLevelDebug).
		WithWriter(f).
		WithFormatter(pterm.LogFormatterJSON)

	return logger, func() { _ = f.Close() }, nil
}
