package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/filter"
	shiftyio "github.com/pfcm/shifty/io"
)

const defaultInterval = 100 * time.Millisecond

// Config is everything smooth can be told, from flags, SMOOTH_* environment
// variables or a config file, in that order of precedence.
type Config struct {
	Exponent   string        `yaml:"exp"`
	Scale      uint8         `yaml:"scale"`
	Stages     int           `yaml:"stages"`
	Channels   int           `yaml:"channels"`
	Format     string        `yaml:"format"`
	Block      int           `yaml:"block"`
	SampleRate uint32        `yaml:"sample-rate"`
	Interval   time.Duration `yaml:"interval"`
	Stats      bool          `yaml:"stats"`
}

func loadConfig(v *viper.Viper) (Config, error) {
	c := Config{
		Exponent:   v.GetString("exp"),
		Scale:      uint8(v.GetUint("scale")),
		Stages:     v.GetInt("stages"),
		Channels:   v.GetInt("channels"),
		Format:     v.GetString("format"),
		Block:      v.GetInt("block"),
		SampleRate: v.GetUint32("sample-rate"),
		Interval:   v.GetDuration("interval"),
		Stats:      v.GetBool("stats"),
	}
	if u := v.GetUint("scale"); u > filter.MaxScale {
		return c, fmt.Errorf("scale %d: %w", u, filter.ErrScale)
	}
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	return c, c.validate()
}

func (c Config) validate() error {
	if _, err := filter.ParseExponent(c.Exponent); err != nil {
		return err
	}
	if _, err := filter.New(filter.Smooth1, c.Scale); err != nil {
		return err
	}
	if c.Stages < 1 {
		return fmt.Errorf("stages %d: need at least one", c.Stages)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channels %d: need at least one", c.Channels)
	}
	if _, err := shiftyio.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Block < 1 {
		return fmt.Errorf("block %d: need at least one frame", c.Block)
	}
	return nil
}

// Filters builds the per-channel filters: Stages banks of EMAs in series.
func (c Config) Filters() (shifty.Ticker, error) {
	e, err := filter.ParseExponent(c.Exponent)
	if err != nil {
		return nil, err
	}
	ts := make([]shifty.Ticker, c.Stages)
	for i := range ts {
		b, err := filter.Bank(e, c.Scale, c.Channels)
		if err != nil {
			return nil, err
		}
		ts[i] = b
	}
	return shifty.Serially(ts...), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print the effective configuration as yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}
