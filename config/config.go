// Package config loads the settings of the program: the built in defaults,
// then a user file on top of them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/layout"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Beat    float64       `yaml:"beat"`
		Dynamic string        `yaml:"dynamic"`
		Audio   Audio         `yaml:"audio"`
		Layout  layout.Config `yaml:"layout"`
	}

	Audio struct {
		Backend    Backend `yaml:"backend"`
		MidiPort   string  `yaml:"midiport"`
		SampleRate int     `yaml:"samplerate"`
	}

	Backend string
)

const (
	Synth    Backend = "synth"
	Midi     Backend = "midi"
	NoOutput Backend = "none"
)

//go:embed default.yml
var defaultYaml []byte

// FileName is looked up in the symphonia directory under the user config
// directory.
const FileName = "config.yml"

// Default returns the built in configuration.
func Default() Config {
	var c Config
	if err := decode(bytes.NewReader(defaultYaml), &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// UserPath returns where the user config file lives.
func UserPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "symphonia", FileName), nil
}

// Load returns the defaults overridden by the file at path. An empty path
// means the user config file, which may be missing; an explicit path must
// exist.
func Load(path string) (Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		p, err := UserPath()
		if err != nil {
			return c, nil
		}
		path = p
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("could not open config: %w", err)
	}
	defer f.Close()
	if err := decode(f, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// decode overwrites the fields present in r and rejects unknown keys.
func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Beat <= 0 {
		return errors.New("beat must be a positive number of seconds")
	}
	if _, err := c.ParsedDynamic(); err != nil {
		return fmt.Errorf("unknown dynamic %q, use one of ppp, pp, p, mp, mf, f, ff, fff", c.Dynamic)
	}
	switch c.Audio.Backend {
	case Synth, Midi, NoOutput:
	default:
		return fmt.Errorf("unknown audio backend %q, use synth, midi or none", c.Audio.Backend)
	}
	if c.Audio.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

func (c Config) ParsedDynamic() (symphonia.Dynamic, error) {
	return symphonia.ParseDynamic(c.Dynamic)
}

func (c Config) BeatDuration() time.Duration {
	return time.Duration(c.Beat * float64(time.Second))
}
