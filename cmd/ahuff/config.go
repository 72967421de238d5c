package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	huffman "github.com/chronos-tachyon/adaptivehuffman"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging level (panic, fatal, error, warn, info, debug, trace)",
		Value: "info",
	}
	bufferSizeFlag = &cli.IntFlag{
		Name:  "buffer-size",
		Usage: "I/O buffer size in bytes",
		Value: huffman.DefaultBufferSize,
	}
	paranoidFlag = &cli.BoolFlag{
		Name:  "paranoid",
		Usage: "Verify every tree invariant after each symbol (slow)",
	}
	keepPartialFlag = &cli.BoolFlag{
		Name:  "keep-partial",
		Usage: "Keep the output file when an operation fails",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config holds the settings shared by all subcommands.
type Config struct {
	BufferSize  int
	LogLevel    string
	Paranoid    bool
	KeepPartial bool
}

func defaultConfig() *Config {
	return &Config{
		BufferSize: huffman.DefaultBufferSize,
		LogLevel:   "info",
	}
}

// buildConfig starts from the defaults, applies the config file if one was
// given and then any flag set on the command line.
func buildConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig()
	if err := configFileOverride(cfg, ctx); err != nil {
		return nil, err
	}
	cmdLineOverride(cfg, ctx)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFileOverride(cfg *Config, ctx *cli.Context) error {
	if !ctx.IsSet(configFileFlag.Name) {
		return nil
	}
	path := ctx.String(configFileFlag.Name)
	if path == "" {
		return errors.New("config file flag provided with empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open config file")
	}
	defer f.Close()

	// Entries missing from the file keep their default.
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	return err
}

func cmdLineOverride(cfg *Config, ctx *cli.Context) {
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.LogLevel = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(bufferSizeFlag.Name) {
		cfg.BufferSize = ctx.Int(bufferSizeFlag.Name)
	}
	if ctx.IsSet(paranoidFlag.Name) {
		cfg.Paranoid = ctx.Bool(paranoidFlag.Name)
	}
	if ctx.IsSet(keepPartialFlag.Name) {
		cfg.KeepPartial = ctx.Bool(keepPartialFlag.Name)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.BufferSize <= 0 {
		return fmt.Errorf("invalid buffer size %d: must be positive", cfg.BufferSize)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

func (cfg *Config) options() []huffman.Option {
	return []huffman.Option{
		huffman.WithBufferSize(cfg.BufferSize),
		huffman.WithParanoid(cfg.Paranoid),
	}
}

func (cfg *Config) newLogger(ctx *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ctx.App.ErrWriter)
	// validateConfig has already checked the level.
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)
	return logger
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
