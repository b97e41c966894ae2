package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/aglyzov/go-pyramis/internal/yamltree"
	"github.com/aglyzov/go-pyramis/keypath"
	"github.com/aglyzov/go-pyramis/pyramis"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp(os.Stdout).Run(args)
}

func newApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:   "pyramis",
		Usage:  "inspect YAML documents as a hierarchical key-value store",
		Writer: out,
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "separator",
			Usage:   "key segment separator",
			Value:   keypath.DefaultSeparator,
			EnvVars: []string{"PYRAMIS_SEPARATOR"},
		},
		&cli.BoolFlag{
			Name:  "ignore-same-value",
			Usage: "skip writes which do not change the stored value",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log tree restructuring to stderr",
		},
	}
	app.Commands = []*cli.Command{
		cmdDump,
		cmdGet,
		cmdWatch,
	}
	return app
}

// newLogger builds the logger of a command. The caller flushes it with Sync.
func newLogger(cctx *cli.Context) (*zap.Logger, error) {
	if !cctx.Bool("verbose") {
		return zap.NewNop(), nil
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	return log, nil
}

// loadStore builds a store out of the YAML file named by the first argument.
func loadStore(cctx *cli.Context, log *zap.Logger) (*pyramis.Store, error) {
	fn := cctx.Args().First()
	if fn == "" {
		return nil, fmt.Errorf("expected a YAML file argument")
	}

	sep := cctx.String("separator")
	if !keypath.ValidSeparator(sep) {
		return nil, fmt.Errorf("separator %q: %w", sep, keypath.ErrInvalidSeparator)
	}

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := yamltree.Load(f, sep)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fn, err)
	}

	log.Debug("document loaded", zap.String("file", fn), zap.Int("items", len(items)))

	return pyramis.New(
		pyramis.WithSeparator(sep),
		pyramis.WithIgnoreSameValue(cctx.Bool("ignore-same-value")),
		pyramis.WithLogger(log),
		pyramis.WithItems(items...),
	), nil
}
