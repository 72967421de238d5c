package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	huffman "github.com/chronos-tachyon/adaptivehuffman"
)

func inspectFile(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.Errorf("usage: %s %s %s", ctx.App.Name, ctx.Command.Name, ctx.Command.ArgsUsage)
	}
	in := ctx.Args().First()
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	logger := cfg.newLogger(ctx)

	tree, err := buildTree(cfg, in)
	if err != nil {
		return err
	}
	logger.WithField("input", in).WithField("symbols", tree.Weight()).Debug("Built tree")

	renderCodes(ctx.App.Writer, tree)
	return nil
}

func dotFile(ctx *cli.Context) (err error) {
	in, out, err := inputOutput(ctx, false)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	logger := cfg.newLogger(ctx)

	tree, err := buildTree(cfg, in)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	if out != "" {
		var f *os.File
		if f, err = os.Create(out); err != nil {
			return err
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		w = f
	}
	if _, err = tree.WriteDot(w); err != nil {
		return errors.Wrap(err, "write dot")
	}
	logger.WithField("input", in).WithField("output", out).Debug("Wrote Graphviz tree")
	return nil
}

// buildTree feeds every symbol of the text file at path to a new tree.
func buildTree(cfg *Config, path string) (*huffman.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree := huffman.NewTree()
	tree.Paranoid = cfg.Paranoid
	sr := huffman.NewSymbolReader(f, cfg.BufferSize)
	for {
		symbol, err := sr.ReadSymbol()
		if err == io.EOF {
			return tree, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		tree.Update(symbol)
	}
}

// renderCodes prints one row per symbol, most frequent first, and then the
// totals of the tree.
func renderCodes(w io.Writer, tree *huffman.Tree) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Weight", "Code"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, leaf := range tree.Leaves() {
		table.Append([]string{
			leaf.Symbol.String(),
			formatUint(leaf.Weight),
			bitString(leaf.Code),
		})
	}
	table.Render()

	cost, static := tree.Cost(), tree.StaticCost()
	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Statistic", "Value"})
	summary.SetAlignment(tablewriter.ALIGN_LEFT)
	summary.Append([]string{"Symbols", formatUint(tree.Weight())})
	summary.Append([]string{"Distinct symbols", strconv.Itoa(tree.Len())})
	summary.Append([]string{"Height", strconv.Itoa(tree.Height())})
	summary.Append([]string{"NYT code", bitString(tree.NYTCode())})
	summary.Append([]string{"Adaptive code bits", formatUint(cost)})
	summary.Append([]string{"Static code bits", formatUint(static)})
	if static != 0 {
		summary.Append([]string{"Overhead", formatRatio(float64(cost)/float64(static) - 1)})
	}
	summary.Render()
}

// bitString is hc as plain 0s and 1s.  The root's empty code shows as "-".
func bitString(hc huffman.Code) string {
	if hc.Size == 0 {
		return "-"
	}
	buf := make([]byte, hc.Size)
	for i := range buf {
		buf[i] = '0' + byte(hc.Bit(i))
	}
	return string(buf)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatRatio(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}
