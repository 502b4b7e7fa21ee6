// Package config loads the viewer's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"keypointview/internal/keypoint"
	"keypointview/internal/logging"
	"keypointview/internal/session"
)

type Config struct {
	Assets string `yaml:"assets"` // directory of sources; empty uses the embedded bundle
	Source string `yaml:"source"` // source loaded at startup

	Render struct {
		Mode           string  `yaml:"mode"`            // 2d or 3d
		Zoom           float64 `yaml:"zoom"`            // 2D zoom factor, 0-5
		CameraDistance float64 `yaml:"camera_distance"` // 3D camera distance, 0-40
		Width          int     `yaml:"width"`           // PNG export width in pixels
		Height         int     `yaml:"height"`          // PNG export height in pixels
		Background     string  `yaml:"background"`      // PNG background, hex colour
	} `yaml:"render"`

	Parse struct {
		Policy2D string `yaml:"policy_2d"` // fail or skip
		Policy3D string `yaml:"policy_3d"` // fail or skip
	} `yaml:"parse"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Source = "TW_Keypoints"
	c.Render.Mode = "2d"
	c.Render.Zoom = session.DefaultZoom
	c.Render.CameraDistance = session.DefaultCameraDistance
	c.Render.Width = 800
	c.Render.Height = 800
	c.Render.Background = "#ffffff"
	c.Parse.Policy2D = keypoint.DefaultPolicy(keypoint.Mode2D).String()
	c.Parse.Policy3D = keypoint.DefaultPolicy(keypoint.Mode3D).String()
	c.Log.Level = "info"
	return c
}

// Load reads path on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := keypoint.ParseMode(c.Render.Mode); err != nil {
		errs = append(errs, err)
	}
	if z := c.Render.Zoom; z < session.MinZoom || z > session.MaxZoom {
		errs = append(errs, fmt.Errorf("render.zoom %v outside [%v, %v]", z, session.MinZoom, session.MaxZoom))
	}
	if d := c.Render.CameraDistance; d < session.MinCameraDistance || d > session.MaxCameraDistance {
		errs = append(errs, fmt.Errorf("render.camera_distance %v outside [%v, %v]", d, session.MinCameraDistance, session.MaxCameraDistance))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}
	if _, err := keypoint.ParsePolicy(c.Parse.Policy2D); err != nil {
		errs = append(errs, fmt.Errorf("parse.policy_2d: %w", err))
	}
	if _, err := keypoint.ParsePolicy(c.Parse.Policy3D); err != nil {
		errs = append(errs, fmt.Errorf("parse.policy_3d: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Mode returns the parsed render mode; call after Validate.
func (c Config) Mode() keypoint.Mode {
	m, _ := keypoint.ParseMode(c.Render.Mode)
	return m
}

// Policies returns the record policy per mode; call after Validate.
func (c Config) Policies() map[keypoint.Mode]keypoint.Policy {
	p2, _ := keypoint.ParsePolicy(c.Parse.Policy2D)
	p3, _ := keypoint.ParsePolicy(c.Parse.Policy3D)
	return map[keypoint.Mode]keypoint.Policy{keypoint.Mode2D: p2, keypoint.Mode3D: p3}
}

// BackgroundColor returns the export background; call after Validate.
func (c Config) BackgroundColor() colorful.Color {
	col, _ := colorful.Hex(c.Render.Background)
	return col
}
