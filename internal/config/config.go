// Package config holds engine tuning knobs, loadable from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes the reaction engine. Every field has a sensible default;
// Load overrides from RIPOSTE_* environment variables.
type Config struct {
	// ComboTimeout is the idle window after which a streak decays.
	// Evaluated lazily when the next signal arrives.
	ComboTimeout time.Duration `env:"RIPOSTE_COMBO_TIMEOUT" envDefault:"10s"`

	// ComboPerRule selects per-rule thresholds (the rule's count field).
	// When false a single global threshold applies to every combo rule.
	ComboPerRule   bool `env:"RIPOSTE_COMBO_PER_RULE" envDefault:"true"`
	ComboThreshold int  `env:"RIPOSTE_COMBO_THRESHOLD" envDefault:"3"`

	// BaseDelay and MaxJitter model natural reaction latency before any
	// output.
	BaseDelay time.Duration `env:"RIPOSTE_BASE_DELAY" envDefault:"500ms"`
	MaxJitter time.Duration `env:"RIPOSTE_MAX_JITTER" envDefault:"250ms"`

	// EmoteTextPause runs between a resolved emote and its text, so the
	// bubble registers before text appears. FragmentPause runs between
	// text fragments, never after the last.
	EmoteTextPause time.Duration `env:"RIPOSTE_EMOTE_TEXT_PAUSE" envDefault:"1s"`
	FragmentPause  time.Duration `env:"RIPOSTE_FRAGMENT_PAUSE" envDefault:"2500ms"`

	// SplitToken divides a localized string into sequential fragments.
	SplitToken string `env:"RIPOSTE_SPLIT_TOKEN" envDefault:"|"`

	// AnimationPrefix marks an emote choice as a full-body animation
	// rather than a reaction bubble.
	AnimationPrefix string `env:"RIPOSTE_ANIMATION_PREFIX" envDefault:"anim:"`

	// CheckSeason and CheckWeather toggle the corresponding condition
	// fields globally.
	CheckSeason  bool `env:"RIPOSTE_CHECK_SEASON" envDefault:"true"`
	CheckWeather bool `env:"RIPOSTE_CHECK_WEATHER" envDefault:"true"`

	// RewardAmount is the relationship delta granted once per
	// (initiator, target) pair per day. RewardSound plays on grant when a
	// sound port is wired.
	RewardAmount int    `env:"RIPOSTE_REWARD_AMOUNT" envDefault:"10"`
	RewardSound  string `env:"RIPOSTE_REWARD_SOUND" envDefault:"dwop"`

	// JournalPath enables the SQLite reaction journal when non-empty.
	JournalPath string `env:"RIPOSTE_JOURNAL_PATH"`

	// Locale selects the localization table.
	Locale string `env:"RIPOSTE_LOCALE" envDefault:"en"`
}

// Default returns the built-in defaults without consulting the
// environment.
func Default() Config {
	return Config{
		ComboTimeout:    10 * time.Second,
		ComboPerRule:    true,
		ComboThreshold:  3,
		BaseDelay:       500 * time.Millisecond,
		MaxJitter:       250 * time.Millisecond,
		EmoteTextPause:  time.Second,
		FragmentPause:   2500 * time.Millisecond,
		SplitToken:      "|",
		AnimationPrefix: "anim:",
		CheckSeason:     true,
		CheckWeather:    true,
		RewardAmount:    10,
		RewardSound:     "dwop",
		Locale:          "en",
	}
}

// Load reads configuration from the environment on top of the defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
