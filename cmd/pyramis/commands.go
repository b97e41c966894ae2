package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/aglyzov/go-pyramis/keypath"
)

var cmdDump = &cli.Command{
	Name:      "dump",
	Usage:     "print every value stored below a prefix",
	ArgsUsage: `<file>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "key to start from (default: the whole document)",
		},
	},
	Action: runDump,
}

func runDump(cctx *cli.Context) error {
	log, err := newLogger(cctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := loadStore(cctx, log)
	if err != nil {
		return err
	}

	prefix := cctx.String("prefix")
	out := cctx.App.Writer

	s.Enum(prefix, func(key string, val interface{}) {
		printValue(out, keypath.Child(prefix, key, s.Separator()), val)
	})

	return nil
}

var cmdGet = &cli.Command{
	Name:      "get",
	Usage:     "print a single value",
	ArgsUsage: `<file> <key>`,
	Action:    runGet,
}

func runGet(cctx *cli.Context) error {
	log, err := newLogger(cctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := loadStore(cctx, log)
	if err != nil {
		return err
	}

	if cctx.Args().Len() < 2 {
		return fmt.Errorf("expected a key argument")
	}

	key := cctx.Args().Get(1)

	val, ok := s.Get(key)
	if !ok {
		return fmt.Errorf("key %q: not found", key)
	}

	fmt.Fprintf(cctx.App.Writer, "%v\n", val)
	return nil
}

var cmdWatch = &cli.Command{
	Name:      "watch",
	Usage:     "apply assignments and print the notifications a watcher receives",
	ArgsUsage: `<file> [key=value ...]`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "key",
			Usage: "key to watch (default: the whole document)",
		},
		&cli.BoolFlag{
			Name:  "enum",
			Usage: "report the current values before applying assignments",
		},
	},
	Action: runWatch,
}

func runWatch(cctx *cli.Context) error {
	log, err := newLogger(cctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := loadStore(cctx, log)
	if err != nil {
		return err
	}

	var (
		key   = cctx.String("key")
		out   = cctx.App.Writer
		label = key
	)

	if label == keypath.RootKey {
		label = "(root)"
	}

	watcher := func(rel string, val, prev interface{}) {
		fmt.Fprintf(out, "%s: %q %v -> %v\n", label, rel, prev, val)
	}

	if cctx.Bool("enum") {
		s.WatchAndEnum(key, watcher)
	} else {
		s.Watch(key, watcher)
	}

	for _, arg := range cctx.Args().Slice()[1:] {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("assignment %q: expected key=value", arg)
		}

		if v == "" {
			s.Delete(k) // an empty value deletes
		} else {
			s.Set(k, v)
		}
	}

	return nil
}

func printValue(w io.Writer, key string, val interface{}) {
	if key == keypath.RootKey {
		key = "(root)"
	}
	fmt.Fprintf(w, "%s = %v\n", key, val)
}
