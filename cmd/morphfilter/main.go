// Command morphfilter runs the morphing filter outside a plugin host.
//
// Usage:
//
//	morphfilter [-log-level level] <command> [flags] [args]
//
// Commands:
//
//	render    filter a WAV file
//	response  print the magnitude response of a parameter set
//	play      audition noise or a looped WAV file, optionally sweeping morph
//	preset    show a preset bank or write one from flags
//
// Examples:
//
//	morphfilter render -morph 0.5 -frequency 1200 in.wav out.wav
//	morphfilter render -preset ~/presets/bright.json -sweep in.wav out.wav
//	morphfilter response -filter HighPass -resonance 4
//	morphfilter play -duration 20s -sweep-period 4s
//	morphfilter preset -o ~/presets/peak.json -filter Peak -resonance 6
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: morphfilter [-log-level level] <command> [flags] [args]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the morphing low-pass/peak/high-pass filter offline or live.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  render    filter a WAV file\n")
		fmt.Fprintf(os.Stderr, "  response  print the magnitude response of a parameter set\n")
		fmt.Fprintf(os.Stderr, "  play      audition noise or a looped WAV file\n")
		fmt.Fprintf(os.Stderr, "  preset    show a preset bank or write one from flags\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nRun 'morphfilter <command> -h' for the flags of a command.\n")
	}
	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	features := cpu.DetectFeatures()
	logger.Debug("vector math dispatch",
		"arch", features.Architecture,
		"sse2", features.HasSSE2,
		"avx2", features.HasAVX2,
		"force_generic", features.ForceGeneric,
	)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:], logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, logger *slog.Logger) error {
	switch command {
	case "render":
		return runRender(args, logger)
	case "response":
		return runResponse(args, os.Stdout, logger)
	case "play":
		return runPlay(args, logger)
	case "preset":
		return runPreset(args, os.Stdout, logger)
	default:
		return fmt.Errorf("unknown command %q (want render, response, play or preset)", command)
	}
}
