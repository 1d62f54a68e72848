// Command goboy runs a ROM headlessly, streaming serial output and
// optionally saving a screenshot and the final state.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thelolagemann/gbcore/internal/config"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "YAML configuration file")
	romFile := flag.String("rom", "", "The rom file to load")
	frames := flag.Uint64("frames", 0, "Frames to run, 0 runs until interrupted")
	serial := flag.String("serial", config.SerialStdout, "Serial output: stdout, none or a file path")
	screenshot := flag.String("screenshot", "", "Save the last frame to this .png or .bmp file")
	scale := flag.Int("scale", 1, "Screenshot scale")
	stateIn := flag.String("state-in", "", "Restore this state before running")
	stateOut := flag.String("state-out", "", "Save the state to this file when done")
	logLevel := flag.String("log-level", "info", "Log level")
	dmaBlocksBus := flag.Bool("dma-blocks-bus", false, "Lock the CPU out of the bus during OAM DMA")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}

	// flags given on the command line take precedence over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "frames":
			cfg.Frames = *frames
		case "serial":
			cfg.Serial = *serial
		case "screenshot":
			cfg.Screenshot = *screenshot
		case "scale":
			cfg.Scale = *scale
		case "state-in":
			cfg.StateIn = *stateIn
		case "state-out":
			cfg.StateOut = *stateOut
		case "log-level":
			cfg.LogLevel = *logLevel
		case "dma-blocks-bus":
			cfg.DMABlocksBus = *dmaBlocksBus
		}
	})
	if cfg.ROM == "" && flag.NArg() > 0 {
		cfg.ROM = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cfg.Logger(os.Stderr)

	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return err
	}
	out, err := cfg.SerialOutput()
	if err != nil {
		return err
	}
	if out != nil {
		defer out.Close()
	}

	opts, err := cfg.Options(log, out)
	if err != nil {
		return err
	}
	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Infof("interrupted, stopping")
		gb.Stop()
	}()

	runErr := gb.Run(cfg.Frames)
	log.Infof("ran %d frames", gb.Frames())

	if cfg.Screenshot != "" {
		p, err := palette.Get(cfg.Palette)
		if err != nil {
			return err
		}
		if err := utils.SaveImage(cfg.Screenshot, gb.Image(p), cfg.Scale); err != nil {
			return err
		}
	}
	if cfg.StateOut != "" {
		b, err := gb.SaveState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.StateOut, b, 0o644); err != nil {
			return err
		}
	}

	return runErr
}
