// Command ahuff compresses and decompresses UTF-8 text files with adaptive
// Huffman coding, and inspects the code tree a text produces.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ahuff"
	app.Usage = "adaptive Huffman coding for UTF-8 text"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		bufferSizeFlag,
		paranoidFlag,
		keepPartialFlag,
	}
	app.Commands = []*cli.Command{
		{
			Action:    compressFile,
			Name:      "compress",
			Usage:     "Compress a UTF-8 text file",
			ArgsUsage: "<input> <output>",
			Flags:     []cli.Flag{statsFlag},
		},
		{
			Action:    decompressFile,
			Name:      "decompress",
			Usage:     "Decompress a file produced by the compress command",
			ArgsUsage: "<input> <output>",
		},
		{
			Action:    inspectFile,
			Name:      "inspect",
			Usage:     "Show the code table built from a UTF-8 text file",
			ArgsUsage: "<input>",
			Description: `
The inspect command feeds every symbol of the input to an empty tree and
prints the resulting codes, most frequent symbol first, followed by the
cost of the adaptive code against an optimal static one.`,
		},
		{
			Action:    dotFile,
			Name:      "dot",
			Usage:     "Write the tree built from a UTF-8 text file in Graphviz format",
			ArgsUsage: "<input> [<output>]",
		},
		{
			Action: dumpConfig,
			Name:   "dumpconfig",
			Usage:  "Show configuration values",
		},
	}
	return app
}

var statsFlag = &cli.BoolFlag{
	Name:  "stats",
	Usage: "Print a table summarizing the compression",
}
