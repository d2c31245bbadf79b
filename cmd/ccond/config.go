package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/viper"

	"github.com/interledger/cryptoconditions/log"
	"github.com/interledger/cryptoconditions/vectors"
)

// Binary argument encodings.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Config holds the settings shared by every subcommand.
type Config struct {
	LogLevel    string
	LogFormat   string
	Encoding    string // how binary arguments and outputs are written
	Concurrency int    // fixture files checked at once by the vectors command
}

// DefaultConfig returns the configuration used when no flag or environment
// variable overrides it.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "warn",
		LogFormat:   string(log.FormatText),
		Encoding:    EncodingHex,
		Concurrency: vectors.DefaultConcurrency,
	}
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := log.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("%w: unknown encoding %q", ErrInvalidConfig, c.Encoding)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	return nil
}

// load fills c from v, which has flags and CCOND_* variables bound.
func (c *Config) load(v *viper.Viper) {
	c.LogLevel = v.GetString(flagLogLevel)
	c.LogFormat = v.GetString(flagLogFormat)
	c.Encoding = strings.ToLower(v.GetString(flagEncoding))
	c.Concurrency = v.GetInt(flagConcurrency)
}

// logger builds the logger selected by the configuration.
func (c *Config) logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := log.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	return log.NewWithWriter(w, level, format), nil
}

// decode reads a binary argument in the configured encoding. Hex input may
// carry a 0x prefix.
func (c *Config) decode(name, s string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch c.Encoding {
	case EncodingBase64:
		b, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	default:
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			s = "0x" + s
		}
		b, err = hexutil.Decode(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, name, err)
	}
	return b, nil
}

// encode writes b in the configured encoding.
func (c *Config) encode(b []byte) string {
	if c.Encoding == EncodingBase64 {
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return common.Bytes2Hex(b)
}
