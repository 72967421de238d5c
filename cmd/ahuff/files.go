package main

import (
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	huffman "github.com/chronos-tachyon/adaptivehuffman"
)

type codecFunc func(dst io.Writer, src io.Reader, opts ...huffman.Option) (huffman.Stats, error)

// transfer is the outcome of running a codec from one file to another.
type transfer struct {
	stats    huffman.Stats
	inSize   int64
	outSize  int64
	duration time.Duration
}

func (x transfer) ratio() float64 {
	if x.inSize == 0 {
		return 0
	}
	return float64(x.outSize) / float64(x.inSize)
}

func (x transfer) fields(in, out string) logrus.Fields {
	return logrus.Fields{
		"input":    in,
		"output":   out,
		"insize":   x.inSize,
		"outsize":  x.outSize,
		"ratio":    x.ratio(),
		"symbols":  x.stats.Symbols,
		"distinct": x.stats.Distinct,
		"duration": x.duration,
	}
}

func compressFile(ctx *cli.Context) error {
	in, out, err := inputOutput(ctx, true)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	logger := cfg.newLogger(ctx)

	x, err := runCodec(cfg, logger, huffman.Compress, in, out)
	if err != nil {
		return errors.Wrapf(err, "compress %s", in)
	}
	logger.WithFields(x.fields(in, out)).Info("Compressed")

	if ctx.Bool(statsFlag.Name) {
		renderStats(ctx.App.Writer, x)
	}
	return nil
}

func decompressFile(ctx *cli.Context) error {
	in, out, err := inputOutput(ctx, true)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	logger := cfg.newLogger(ctx)

	x, err := runCodec(cfg, logger, huffman.Decompress, in, out)
	if err != nil {
		return errors.Wrapf(err, "decompress %s", in)
	}
	logger.WithFields(x.fields(in, out)).Info("Decompressed")
	return nil
}

// runCodec streams in through codec into out.  Unless cfg.KeepPartial is set,
// out is removed when anything fails.
func runCodec(cfg *Config, logger *logrus.Logger, codec codecFunc, in, out string) (x transfer, err error) {
	start := time.Now()

	src, err := os.Open(in)
	if err != nil {
		return x, err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return x, err
	}
	defer func() {
		if err == nil || cfg.KeepPartial {
			return
		}
		if rmErr := os.Remove(out); rmErr != nil {
			logger.WithError(rmErr).WithField("output", out).Warn("Failed to remove partial output")
			return
		}
		logger.WithField("output", out).Debug("Removed partial output")
	}()

	x.stats, err = codec(dst, src, cfg.options()...)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return x, err
	}

	if x.inSize, err = fileSize(in); err != nil {
		return x, err
	}
	if x.outSize, err = fileSize(out); err != nil {
		return x, err
	}
	x.duration = time.Since(start)
	return x, nil
}

func fileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// inputOutput returns the positional file arguments.  The output is optional
// unless required is set; an empty output means standard output.
func inputOutput(ctx *cli.Context, required bool) (string, string, error) {
	args := ctx.Args()
	switch {
	case args.Len() == 2:
		return args.Get(0), args.Get(1), nil
	case args.Len() == 1 && !required:
		return args.Get(0), "", nil
	}
	return "", "", errors.Errorf("usage: %s %s %s", ctx.App.Name, ctx.Command.Name, ctx.Command.ArgsUsage)
}

// renderStats prints the outcome of a compression as a two column table.
func renderStats(w io.Writer, x transfer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"Symbols", formatUint(x.stats.Symbols)})
	table.Append([]string{"Distinct symbols", formatUint(x.stats.Distinct)})
	table.Append([]string{"Code bits", formatUint(x.stats.Bits)})
	table.Append([]string{"Input bytes", formatInt(x.inSize)})
	table.Append([]string{"Output bytes", formatInt(x.outSize)})
	table.Append([]string{"Ratio", formatRatio(x.ratio())})
	table.Append([]string{"Duration", x.duration.String()})
	table.Render()
}
