package config

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ErrInvalidPolicy is returned by Validate when a policy has an unknown value.
var ErrInvalidPolicy = errors.New("invalid policy")

// MalformedRowPolicy decides what happens to lines with fewer columns than a flight event has.
type MalformedRowPolicy string

const (
	// SkipMalformed drops the line and reports it as a warning.
	SkipMalformed MalformedRowPolicy = "skip"

	// FailOnMalformed aborts the run.
	FailOnMalformed MalformedRowPolicy = "fail"
)

// UnparsableDelayPolicy decides how a missing or non-numeric arrival delay is treated.
type UnparsableDelayPolicy string

const (
	ExcludeUnparsable UnparsableDelayPolicy = "exclude"
	ZeroDelay         UnparsableDelayPolicy = "zero"
)

type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

type Config struct {
	InputPath string `json:"inputPath" default:"/tmp/2008.csv"`

	MalformedRows   MalformedRowPolicy    `json:"malformedRows" default:"skip"`
	UnparsableDelay UnparsableDelayPolicy `json:"unparsableDelay" default:"exclude"`

	// IncludeOnTime aggregates every flight instead of delayed ones only.
	IncludeOnTime bool `json:"includeOnTime"`

	SortOutput bool `json:"sortOutput" default:"true"`

	// Partitions is the number of reducer partitions carriers are hashed into.
	Partitions int `json:"partitions" default:"1"`

	// MaxReportedErrors limits the number of skipped malformed lines kept as warnings.
	MaxReportedErrors int `json:"maxReportedErrors" default:"10"`

	Format Format `json:"format" default:"text"`
}

func Default() *Config {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a JSON config file onto the defaults. Omitted fields keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c := Default()
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.InputPath == "" {
		errs = multierror.Append(errs, errors.New("input path is empty"))
	}
	switch c.MalformedRows {
	case SkipMalformed, FailOnMalformed:
	default:
		errs = multierror.Append(errs, errors.Wrapf(ErrInvalidPolicy, "malformed rows: %q", c.MalformedRows))
	}
	switch c.UnparsableDelay {
	case ExcludeUnparsable, ZeroDelay:
	default:
		errs = multierror.Append(errs, errors.Wrapf(ErrInvalidPolicy, "unparsable delay: %q", c.UnparsableDelay))
	}
	switch c.Format {
	case TextFormat, JSONFormat:
	default:
		errs = multierror.Append(errs, errors.Errorf("unknown format %q", c.Format))
	}
	if c.Partitions < 1 {
		errs = multierror.Append(errs, errors.Errorf("partitions must be positive, got %d", c.Partitions))
	}
	if c.MaxReportedErrors < 0 {
		errs = multierror.Append(errs, errors.Errorf("max reported errors must not be negative, got %d", c.MaxReportedErrors))
	}
	return errs.ErrorOrNil()
}
