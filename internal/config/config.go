// Package config loads the settings of a headless emulation run from
// a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/pkg/log"
	"gopkg.in/yaml.v3"
)

const (
	// SerialStdout sends serial output to stdout.
	SerialStdout = "stdout"
	// SerialNone discards serial output.
	SerialNone = "none"

	// MaxScale is the largest screenshot scale accepted.
	MaxScale = 8
)

var (
	ErrNoROM        = errors.New("config: rom is required")
	ErrInvalidScale = errors.New("config: scale out of range")
)

// Config holds the settings of a run.
type Config struct {
	ROM      string `yaml:"rom"`
	LogLevel string `yaml:"log_level"`
	// Frames is the number of frames to run, 0 runs until interrupted.
	Frames uint64 `yaml:"frames"`
	// Serial is stdout, none, or a file path.
	Serial string `yaml:"serial"`

	Screenshot string `yaml:"screenshot"`
	Scale      int    `yaml:"scale"`
	Palette    int    `yaml:"palette"`

	StateIn  string `yaml:"state_in"`
	StateOut string `yaml:"state_out"`

	DMABlocksBus bool    `yaml:"dma_blocks_bus"`
	EntryPoint   *uint16 `yaml:"entry_point"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Serial:   SerialStdout,
		Scale:    1,
		Palette:  palette.Greyscale,
	}
}

// Load reads the configuration at path over the defaults. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a configuration from r over the defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.ROM == "" {
		result = multierror.Append(result, ErrNoROM)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("config: %w", err))
	}
	if c.Scale < 1 || c.Scale > MaxScale {
		result = multierror.Append(result, fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale))
	}
	if _, err := palette.Get(c.Palette); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Screenshot != "" {
		switch strings.ToLower(filepath.Ext(c.Screenshot)) {
		case ".png", ".bmp":
		default:
			result = multierror.Append(result, fmt.Errorf("config: unsupported screenshot format %q", c.Screenshot))
		}
	}
	if c.Frames == 0 && c.StateOut == "" && c.Screenshot == "" && c.Serial == SerialNone {
		result = multierror.Append(result, errors.New("config: run produces no output"))
	}
	return result.ErrorOrNil()
}

// Logger returns a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) log.Logger {
	return log.NewWithLevel(w, c.LogLevel)
}

// SerialOutput opens the configured serial destination. The returned
// writer is nil when serial output is discarded.
func (c *Config) SerialOutput() (io.WriteCloser, error) {
	switch c.Serial {
	case SerialNone, "":
		return nil, nil
	case SerialStdout:
		return nopCloser{os.Stdout}, nil
	default:
		return os.Create(c.Serial)
	}
}

// Options maps the configuration to the options of a GameBoy, reading
// the initial state if one is configured.
func (c *Config) Options(l log.Logger, serial io.Writer) ([]gameboy.Opt, error) {
	opts := []gameboy.Opt{
		gameboy.WithLogger(l),
		gameboy.WithDMABusBlocking(c.DMABlocksBus),
	}
	if serial != nil {
		opts = append(opts, gameboy.WithSerialOutput(serial))
	}
	if c.EntryPoint != nil {
		opts = append(opts, gameboy.WithEntryPoint(*c.EntryPoint))
	}
	if c.StateIn != "" {
		b, err := os.ReadFile(c.StateIn)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gameboy.WithState(b))
	}
	return opts, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
