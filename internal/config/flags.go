package config

import (
	"flag"
	"strconv"
	"time"
)

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config     string
	SaveConfig bool
	Debug      bool
	Size       int
	Seed       *uint64 // nil unless -seed was given, so 0 is a valid seed
	Ratio      float64
	Interval   time.Duration
}

// RegisterFlags adds the shared configuration flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{Ratio: -1}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.SaveConfig, "save-config", false, "Write the effective config to the user config directory")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Size, "size", 0, "Grid size for generated grids")
	fs.Var(&seedValue{target: &f.Seed}, "seed", "Random seed for generated grids (default time-based)")
	fs.Float64Var(&f.Ratio, "ratio", -1, "Share of blocked cells in generated grids")
	fs.DurationVar(&f.Interval, "interval", 0, "Delay between walker steps")
	return f
}

// seedValue is a flag.Value that records whether -seed was set at all.
type seedValue struct {
	target **uint64
}

func (v *seedValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return strconv.FormatUint(**v.target, 10)
}

func (v *seedValue) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return err
	}
	*v.target = &n
	return nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Size > 0 {
		cfg.Grid.Size = f.Size
	}
	if f.Seed != nil {
		seed := *f.Seed
		cfg.Grid.Seed = &seed
	}
	if f.Ratio >= 0 {
		cfg.Grid.BlockedRatio = f.Ratio
	}
	if f.Interval > 0 {
		cfg.Animation.StepInterval = f.Interval
	}
}
