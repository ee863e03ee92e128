package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/marionette"
)

// Script drives a headless simulation. Every field is optional.
//
//	frames = 120
//	dt = 0.016
//
//	[physics]
//	pixels_per_meter = 1000
//	gravity = 9.8
//
//	[[set]]
//	frame = 0
//	param = "Head:: Yaw-Pitch"
//	value = [0.5, 0.0]
//
//	[[tween]]
//	frame = 10
//	param = "Smile"
//	to = [1.0, 0.0]
//	duration = 0.5
//	ease = "InOutQuad"
type Script struct {
	Frames  int            `toml:"frames" yaml:"frames" json:"frames"`
	DT      float32        `toml:"dt" yaml:"dt" json:"dt"`
	Physics *PhysicsConfig `toml:"physics" yaml:"physics" json:"physics"`
	Sets    []SetStep      `toml:"set" yaml:"set" json:"set"`
	Tweens  []TweenStep    `toml:"tween" yaml:"tween" json:"tween"`
	// Watch lists parameters logged every frame at debug level.
	Watch []string `toml:"watch" yaml:"watch" json:"watch"`
	// MinChange, when positive, suppresses physics events that moved less
	// than this on both axes since the driver's last published event.
	MinChange float32 `toml:"min_change" yaml:"min_change" json:"min_change"`
}

// PhysicsConfig overrides the puppet physics constants.
type PhysicsConfig struct {
	PixelsPerMeter float32 `toml:"pixels_per_meter" yaml:"pixels_per_meter" json:"pixels_per_meter"`
	Gravity        float32 `toml:"gravity" yaml:"gravity" json:"gravity"`
}

// SetStep sets a parameter at the start of a frame.
type SetStep struct {
	Frame int        `toml:"frame" yaml:"frame" json:"frame"`
	Param string     `toml:"param" yaml:"param" json:"param"`
	Value [2]float32 `toml:"value" yaml:"value" json:"value"`
}

// TweenStep starts a parameter animation at the start of a frame.
type TweenStep struct {
	Frame    int        `toml:"frame" yaml:"frame" json:"frame"`
	Param    string     `toml:"param" yaml:"param" json:"param"`
	To       [2]float32 `toml:"to" yaml:"to" json:"to"`
	Duration float32    `toml:"duration" yaml:"duration" json:"duration"`
	Ease     string     `toml:"ease" yaml:"ease" json:"ease"`
}

const (
	defaultFrames = 60
	defaultDT     = float32(1) / 60
)

// ErrScriptFormat is returned for script files with an unknown extension.
var ErrScriptFormat = errors.New("unsupported script format")

// loadScript reads a script, picking the decoder by file extension.
func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return parseScript(filepath.Ext(path), data)
}

func parseScript(ext string, data []byte) (*Script, error) {
	var s Script
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("parse TOML script: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse YAML script: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse JSON script: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (supported: .toml, .yaml, .yml, .json)", ErrScriptFormat, ext)
	}
	s.setDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) setDefaults() {
	if s.Frames == 0 {
		s.Frames = defaultFrames
	}
	if s.DT == 0 {
		s.DT = defaultDT
	}
	sort.SliceStable(s.Sets, func(i, j int) bool { return s.Sets[i].Frame < s.Sets[j].Frame })
	sort.SliceStable(s.Tweens, func(i, j int) bool { return s.Tweens[i].Frame < s.Tweens[j].Frame })
}

func (s *Script) validate() error {
	if s.Frames < 0 {
		return fmt.Errorf("script: frames must be positive, got %d", s.Frames)
	}
	if s.DT < 0 {
		return fmt.Errorf("script: dt must be positive, got %g", s.DT)
	}
	for i, t := range s.Tweens {
		if _, err := easeByName(t.Ease); err != nil {
			return fmt.Errorf("script: tween %d: %w", i, err)
		}
		if t.Duration <= 0 {
			return fmt.Errorf("script: tween %d: duration must be positive", i)
		}
	}
	return nil
}

// config returns the puppet config the script asks for.
func (s *Script) config(debug bool) marionette.Config {
	cfg := marionette.DefaultConfig()
	cfg.Debug = debug
	if s.Physics != nil {
		if s.Physics.PixelsPerMeter != 0 {
			cfg.Physics.PixelsPerMeter = s.Physics.PixelsPerMeter
		}
		if s.Physics.Gravity != 0 {
			cfg.Physics.Gravity = s.Physics.Gravity
		}
	}
	return cfg
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"Linear":     ease.Linear,
	"InQuad":     ease.InQuad,
	"OutQuad":    ease.OutQuad,
	"InOutQuad":  ease.InOutQuad,
	"InCubic":    ease.InCubic,
	"OutCubic":   ease.OutCubic,
	"InOutCubic": ease.InOutCubic,
	"InSine":     ease.InSine,
	"OutSine":    ease.OutSine,
	"InOutSine":  ease.InOutSine,
	"OutBounce":  ease.OutBounce,
	"OutElastic": ease.OutElastic,
}

func easeByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}
