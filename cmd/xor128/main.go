// Command xor128 draws reproducible random values from the command line.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zl "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nozzle/xor128"
	"github.com/nozzle/xor128/internal/parallel"
	"github.com/nozzle/xor128/uniformity"
)

// checkSamples is the sample size used by "check" when Count is smaller.
const checkSamples = 100000

var errCheckFailed = errors.New("uniformity check failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags *cliFlags

	cmd := &cobra.Command{
		Use:   "xor128",
		Short: "Reproducible xorshift128 random values",
		Long:  "Draws values from one or more seeded xorshift128 streams and writes them as CSV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if err := configureLogger(cfg.LogLevel); err != nil {
				return err
			}

			out := io.Writer(cmd.OutOrStdout())
			if cfg.Output != "-" && cfg.Output != "" {
				file, err := os.Create(cfg.Output)
				if err != nil {
					return errors.Wrap(err, "creating output")
				}
				defer file.Close()
				out = file
			}

			if err := run(cfg, out); err != nil {
				zl.Error().Err(err).Str("op", cfg.Op).Msg("run failed")
				return err
			}

			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d stream(s) of %q to %s\n", cfg.Streams, cfg.Op, cfg.Output)
			}
			return nil
		},
	}
	flags = bindFlags(cmd.Flags())
	return cmd
}

// cliFlags holds the values bound to a flag set before parsing.
type cliFlags struct {
	configFile, op, seeds, seedString *string
	alphabet, items, output, logLevel *string
	count, length, streams, workers   *int
	lo, hi                            *float64
	verbose                           *bool
}

func bindFlags(fs *pflag.FlagSet) *cliFlags {
	def := DefaultConfig()
	return &cliFlags{
		configFile: fs.String("config", "", "YAML configuration file"),
		op:         fs.String("op", def.Op, "Operation: float, int, bool, string, shuffle, pick, check"),
		count:      fs.IntP("count", "n", def.Count, "Number of values per stream (sample size for check)"),
		seeds:      fs.String("seed", "", "Comma-separated seeds, at most 4 (default: entropy)"),
		seedString: fs.String("seed-string", "", "Textual seed"),
		lo:         fs.Float64("min", 0, "Lower bound for float and int (requires --max)"),
		hi:         fs.Float64("max", 0, "Upper bound for float and int"),
		length:     fs.Int("length", def.Length, "String length"),
		alphabet:   fs.String("alphabet", def.Alphabet, "String alphabet"),
		items:      fs.String("items", "", "Comma-separated items for shuffle and pick"),
		streams:    fs.Int("streams", def.Streams, "Number of independent generators"),
		workers:    fs.Int("workers", 0, "Parallel workers (0 = number of CPUs)"),
		output:     fs.String("output", def.Output, "Output CSV file, - for stdout"),
		logLevel:   fs.String("log-level", def.LogLevel, "Log level"),
		verbose:    fs.BoolP("verbose", "v", false, "Verbose output"),
	}
}

// loadConfig parses args into a Config. Values from --config are applied
// first and flags given explicitly override them.
func loadConfig(fs *pflag.FlagSet, args []string) (*Config, error) {
	flags := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags.config(fs)
}

// config builds the Config described by the parsed flag set fs.
func (f *cliFlags) config(fs *pflag.FlagSet) (*Config, error) {
	def := DefaultConfig()
	cfg := &def
	if *f.configFile != "" {
		var err error
		if cfg, err = ParseConfigFile(*f.configFile); err != nil {
			return nil, err
		}
	}

	var err error
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "op":
			cfg.Op = *f.op
		case "count":
			cfg.Count = *f.count
		case "seed":
			var parsed []int64
			if parsed, err = parseSeeds(*f.seeds); err == nil {
				cfg.Seeds = parsed
			}
		case "seed-string":
			cfg.SeedString = *f.seedString
		case "min":
			cfg.Min = f.lo
		case "max":
			cfg.Max = f.hi
		case "length":
			cfg.Length = *f.length
		case "alphabet":
			cfg.Alphabet = *f.alphabet
		case "items":
			cfg.Items = strings.Split(*f.items, ",")
		case "streams":
			cfg.Streams = *f.streams
		case "workers":
			cfg.Workers = *f.workers
		case "output":
			cfg.Output = *f.output
		case "log-level":
			cfg.LogLevel = *f.logLevel
		case "verbose":
			cfg.Verbose = *f.verbose
		}
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseSeeds(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	seeds := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "seed %d", i)
		}
		seeds[i] = v
	}
	return seeds, nil
}

// configureLogger points the global zerolog logger at a console writer on
// stderr.
func configureLogger(level string) error {
	lvl := zerolog.WarnLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(strings.ToLower(level)); err != nil {
			return err
		}
	}
	zl.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(lvl)
	return nil
}

type streamResult struct {
	rows [][]string
	err  error
}

// run executes cfg and writes CSV rows to w.
func run(cfg *Config, w io.Writer) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}

	results := parallel.Map(cfg.Streams, workers, func(i int) streamResult {
		g, err := cfg.streamGenerator(i)
		if err != nil {
			return streamResult{err: errors.Wrapf(err, "stream %d", i)}
		}
		var rows [][]string
		if cfg.Op == opCheck {
			rows, err = checkStream(cfg, g, i)
		} else {
			rows, err = drawStream(cfg, g, i)
		}
		return streamResult{rows: rows, err: err}
	})

	writer := csv.NewWriter(w)
	header := []string{"stream", "index", "value"}
	if cfg.Op == opCheck {
		header = []string{"stream", "test", "statistic", "critical", "p_value", "pass"}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	var failed bool
	for _, res := range results {
		if res.err != nil && !errors.Is(res.err, errCheckFailed) {
			return res.err
		}
		failed = failed || res.err != nil
		if err := writer.WriteAll(res.rows); err != nil {
			return err
		}
	}

	if failed {
		return errCheckFailed
	}
	return nil
}

func drawStream(cfg *Config, g *xor128.Generator, stream int) ([][]string, error) {
	rows := make([][]string, 0, cfg.Count)
	for i := range cfg.Count {
		v, err := draw(cfg, g)
		if err != nil {
			return nil, errors.Wrapf(err, "stream %d", stream)
		}
		rows = append(rows, []string{strconv.Itoa(stream), strconv.Itoa(i), v})
	}
	return rows, nil
}

func draw(cfg *Config, g *xor128.Generator) (string, error) {
	bounds := cfg.bounds()

	switch cfg.Op {
	case opFloat:
		f, err := g.Random(bounds...)
		return strconv.FormatFloat(f, 'g', -1, 64), err
	case opInt:
		ints := make([]int, len(bounds))
		for i, v := range bounds {
			ints[i] = int(v)
		}
		n, err := g.RandomInt(ints...)
		return strconv.Itoa(n), err
	case opBool:
		return strconv.FormatBool(g.RandomBool()), nil
	case opString:
		return g.RandomStringFrom(cfg.Length, cfg.Alphabet)
	case opShuffle:
		return strings.Join(xor128.Shuffle(g, cfg.Items), ","), nil
	case opPick:
		v, _ := xor128.Pick(g, cfg.Items)
		return v, nil
	default:
		return "", errors.Errorf("unknown op %q", cfg.Op)
	}
}

// checkStream runs the uniformity suite on one generator.
func checkStream(cfg *Config, g *xor128.Generator, stream int) ([][]string, error) {
	n := max(cfg.Count, checkSamples)

	floats := make([]float64, n)
	for i := range floats {
		floats[i] = g.Float64()
	}
	bins := make([]float64, 10)
	for range n {
		i, _ := g.RandomInt(len(bins))
		bins[i]++
	}
	var trues int
	for range n {
		if g.RandomBool() {
			trues++
		}
	}

	results := []uniformity.Result{
		uniformity.ChiSquare(bins),
		uniformity.KolmogorovSmirnov(floats),
		uniformity.SerialCorrelation(floats),
		uniformity.Binomial(trues, n),
	}

	var err error
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if !r.Pass() {
			err = errCheckFailed
			zl.Warn().Int("stream", stream).Str("test", r.Name).Float64("p", r.PValue).Msg("uniformity rejected")
		}
		rows = append(rows, []string{
			strconv.Itoa(stream),
			r.Name,
			strconv.FormatFloat(r.Statistic, 'g', 6, 64),
			strconv.FormatFloat(r.Critical, 'g', 6, 64),
			strconv.FormatFloat(r.PValue, 'g', 6, 64),
			strconv.FormatBool(r.Pass()),
		})
	}
	return rows, err
}
