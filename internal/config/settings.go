package config

import (
	"fmt"
	"math"

	"github.com/spf13/pflag"

	"github.com/verte-zerg/autotype/internal/model"
)

// Defaults for the typing flags.
const (
	DefaultMistakeProb      = 0.02
	DefaultMistakeLenMin    = 1
	DefaultMistakeLenMax    = 6
	DefaultRandomDelayChar  = 0.03
	DefaultRandomDelaySpace = 0.1
	DefaultRandomJitter     = 0.05
)

// Settings holds the values CLI flags bind to. Merge fills in config file
// values for flags the user left unchanged.
type Settings struct {
	WPM              float64
	Duration         float64
	MistakeProb      float64
	MistakeLenMin    int
	MistakeLenMax    int
	RandomDelayChar  float64
	RandomDelaySpace float64
	RandomJitter     float64
	Hotkey           string
	Cue              string
	LogLevel         string
	LogFile          string

	wpmSet      bool
	durationSet bool
}

// BindTypingFlags registers the pacing and mistake flags on fs.
func (s *Settings) BindTypingFlags(fs *pflag.FlagSet, defaultWPM float64) {
	fs.Float64Var(&s.WPM, "wpm", 0, fmt.Sprintf("typing speed in words per minute (default %.0f)", defaultWPM))
	fs.Float64Var(&s.Duration, "duration", 0, "total typing time in seconds")
	fs.Float64Var(&s.MistakeProb, "mistake-prob", DefaultMistakeProb, "probability of a mistake before each character (0-1)")
	fs.IntVar(&s.MistakeLenMin, "mistake-len-min", DefaultMistakeLenMin, "minimum mistake length")
	fs.IntVar(&s.MistakeLenMax, "mistake-len-max", DefaultMistakeLenMax, "maximum mistake length")
	fs.Float64Var(&s.RandomDelayChar, "random-delay-char", DefaultRandomDelayChar, "extra delay after each non-space character (seconds)")
	fs.Float64Var(&s.RandomDelaySpace, "random-delay-space", DefaultRandomDelaySpace, "extra delay after each space (seconds)")
	fs.Float64Var(&s.RandomJitter, "random-jitter", DefaultRandomJitter, "upper bound of random jitter per character (seconds)")
}

// Merge applies file values to every flag that was not set on the command
// line. wpm and duration are one setting: a flag for either one overrides
// both file values.
func (s *Settings) Merge(fs *pflag.FlagSet, file FileConfig) {
	t := file.Typing
	s.wpmSet = changed(fs, "wpm")
	s.durationSet = changed(fs, "duration")
	if !s.wpmSet && !s.durationSet {
		s.wpmSet = applyFloat(fs, "wpm", &s.WPM, t.WPM)
		s.durationSet = applyFloat(fs, "duration", &s.Duration, t.Duration)
	}
	applyFloat(fs, "mistake-prob", &s.MistakeProb, t.MistakeProb)
	applyInt(fs, "mistake-len-min", &s.MistakeLenMin, t.MistakeLenMin)
	applyInt(fs, "mistake-len-max", &s.MistakeLenMax, t.MistakeLenMax)
	applyFloat(fs, "random-delay-char", &s.RandomDelayChar, t.RandomDelayChar)
	applyFloat(fs, "random-delay-space", &s.RandomDelaySpace, t.RandomDelaySpace)
	applyFloat(fs, "random-jitter", &s.RandomJitter, t.RandomJitter)
	applyString(fs, "hotkey", &s.Hotkey, t.Hotkey)
	applyString(fs, "cue", &s.Cue, file.Audio.Cue)
	applyString(fs, "log-level", &s.LogLevel, file.Log.Level)
	applyString(fs, "log-file", &s.LogFile, file.Log.File)
}

// Speed returns the wpm and duration that were set by a flag or the config
// file, nil when unset. It must be called after Merge.
func (s *Settings) Speed() (wpm, duration *float64, err error) {
	if s.wpmSet {
		v := s.WPM
		wpm = &v
	}
	if s.durationSet {
		v := s.Duration
		duration = &v
	}
	if err := ValidateSpeed(wpm, duration); err != nil {
		return nil, nil, err
	}
	return wpm, duration, nil
}

// TypingConfig builds the worker configuration from the merged settings.
func (s *Settings) TypingConfig(baseDelay float64) model.TypingConfig {
	return model.TypingConfig{
		BaseDelay:     baseDelay,
		MistakeProb:   s.MistakeProb,
		MistakeLenMin: s.MistakeLenMin,
		MistakeLenMax: s.MistakeLenMax,
		CharDelay:     s.RandomDelayChar,
		SpaceDelay:    s.RandomDelaySpace,
		Jitter:        s.RandomJitter,
	}
}

// ValidateSpeed rejects setting both values and any value that is not a
// finite positive number.
func ValidateSpeed(wpm, duration *float64) error {
	if wpm != nil && duration != nil {
		return &model.ConfigError{Field: "wpm", Reason: "cannot be combined with --duration"}
	}
	if wpm != nil && !finitePositive(*wpm) {
		return &model.ConfigError{Field: "wpm", Reason: "must be a finite number > 0"}
	}
	if duration != nil && !finitePositive(*duration) {
		return &model.ConfigError{Field: "duration", Reason: "must be a finite number > 0"}
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func changed(fs *pflag.FlagSet, name string) bool {
	flag := fs.Lookup(name)
	return flag != nil && flag.Changed
}

// The apply helpers report whether the file value was used. A flag that is
// not registered on fs is left alone.
func applyString(fs *pflag.FlagSet, name string, target, value *string) bool {
	if value == nil {
		return false
	}
	if flag := fs.Lookup(name); flag == nil || flag.Changed {
		return false
	}
	*target = *value
	return true
}

func applyInt(fs *pflag.FlagSet, name string, target, value *int) bool {
	if value == nil {
		return false
	}
	if flag := fs.Lookup(name); flag == nil || flag.Changed {
		return false
	}
	*target = *value
	return true
}

func applyFloat(fs *pflag.FlagSet, name string, target, value *float64) bool {
	if value == nil {
		return false
	}
	if flag := fs.Lookup(name); flag == nil || flag.Changed {
		return false
	}
	*target = *value
	return true
}
