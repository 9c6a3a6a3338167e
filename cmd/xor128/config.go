package main

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nozzle/xor128"
)

// Operations supported by the command.
const (
	opFloat   = "float"
	opInt     = "int"
	opBool    = "bool"
	opString  = "string"
	opShuffle = "shuffle"
	opPick    = "pick"
	opCheck   = "check"
)

// Config describes one run of the command. It can be loaded from YAML and
// is overridden by flags given on the command line.
type Config struct {
	// Op is the operation to run.
	// Options: "float", "int", "bool", "string", "shuffle", "pick", "check"
	// Default: "float"
	Op string `yaml:"op"`

	// Count is the number of values drawn per stream.
	// Default: 10
	Count int `yaml:"count"`

	// Seeds are up to four seed values. Empty means seed from entropy
	// unless SeedString is set.
	Seeds []int64 `yaml:"seeds"`

	// SeedString seeds from text instead of numbers.
	SeedString string `yaml:"seed_string"`

	// Min and Max bound "float" and "int" draws to [Min, Max). Min alone is
	// not allowed; Max alone means [0, Max). When neither is set the
	// generator defaults apply. Bounds for "int" must be whole numbers.
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`

	// Length and Alphabet configure "string".
	// Default: 10 and the alphanumeric alphabet
	Length   int    `yaml:"length"`
	Alphabet string `yaml:"alphabet"`

	// Items are the values for "shuffle" and "pick".
	Items []string `yaml:"items"`

	// Streams is the number of independent generators. Stream i is seeded
	// with every seed word increased by 4*i.
	// Default: 1
	Streams int `yaml:"streams"`

	// Workers bounds how many streams run at once.
	// 0 = auto-detect based on CPU cores.
	Workers int `yaml:"workers"`

	// Output is the CSV file to write, or "-" for stdout.
	// Default: "-"
	Output string `yaml:"output"`

	// LogLevel is the zerolog level name.
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// Verbose enables progress output.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Op:       opFloat,
		Count:    10,
		Length:   xor128.DefaultLength,
		Alphabet: xor128.DefaultAlphabet,
		Streams:  1,
		Output:   "-",
		LogLevel: "warn",
	}
}

// ParseConfigFile returns a Config given the path to a YAML file. Fields
// missing from the file keep their defaults. Environment variables in the
// path are expanded.
func ParseConfigFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return &cfg, nil
}

// Validate checks that the configuration describes a runnable job.
func (c *Config) Validate() error {
	switch c.Op {
	case opFloat, opInt, opBool, opString, opShuffle, opPick, opCheck:
	default:
		return errors.Errorf("unknown op %q", c.Op)
	}
	if c.Count < 0 {
		return errors.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Streams < 1 {
		return errors.Errorf("streams must be at least 1, got %d", c.Streams)
	}
	if len(c.Seeds) > 0 && c.SeedString != "" {
		return errors.New("seeds and seed_string are mutually exclusive")
	}
	if (c.Op == opShuffle || c.Op == opPick) && len(c.Items) == 0 {
		return errors.Errorf("op %q needs items", c.Op)
	}
	return c.validateBounds()
}

// maxWholeBound is the largest magnitude a float64 holds as an exact integer.
const maxWholeBound = 1 << 53

func (c *Config) validateBounds() error {
	if c.Min != nil && c.Max == nil {
		return errors.New("min needs max")
	}
	bounds := c.bounds()
	if len(bounds) == 2 && bounds[0] > bounds[1] {
		return errors.Errorf("min %v greater than max %v", bounds[0], bounds[1])
	}
	if c.Op != opInt {
		return nil
	}
	for _, v := range bounds {
		if math.Trunc(v) != v || math.Abs(v) > maxWholeBound {
			return errors.Errorf("int bound %v is not a whole number within ±2^53", v)
		}
	}
	return nil
}

// bounds returns the range arguments for "float" and "int", or nil for the
// generator defaults.
func (c *Config) bounds() []float64 {
	if c.Max == nil {
		return nil
	}
	var lo float64
	if c.Min != nil {
		lo = *c.Min
	}
	return []float64{lo, *c.Max}
}

// streamGenerator builds the generator for stream i.
func (c *Config) streamGenerator(i int) (*xor128.Generator, error) {
	if c.SeedString != "" {
		if i == 0 {
			return xor128.NewFromString(c.SeedString), nil
		}
		return xor128.NewFromString(fmt.Sprintf("%s#%d", c.SeedString, i)), nil
	}

	seeds := make([]int64, len(c.Seeds))
	for j, s := range c.Seeds {
		seeds[j] = s + int64(4*i)
	}
	cfg := xor128.DefaultConfig()
	cfg.Seeds = seeds
	return xor128.NewWithConfig(cfg)
}
