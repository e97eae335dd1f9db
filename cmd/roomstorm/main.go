// Package main is the entry point for the roomstorm room editor CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/roomstorm/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, args, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("roomstorm %s (%s)\n", version, commit)
		return 0
	}
	if len(args) == 0 {
		usage()
		return 2
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := dispatch(application, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func dispatch(application *app.Application, args []string) error {
	verb, rest := args[0], args[1:]
	switch verb {
	case "new":
		return cmdNew(application, rest)
	case "list":
		return cmdList(application)
	case "recent":
		return cmdRecent(application)
	case "show":
		return cmdShow(application, rest)
	case "export":
		return cmdExport(application, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", verb)
	}
}

func cmdNew(application *app.Application, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	width := fs.Int("width", 800, "Room width in pixels")
	height := fs.Int("height", 600, "Room height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: roomstorm new [flags] <name>")
	}
	name := fs.Arg(0)
	if _, err := application.NewRoom(name, *width, *height); err != nil {
		return err
	}
	fmt.Printf("created room %q (%dx%d)\n", name, *width, *height)
	return nil
}

func cmdList(application *app.Application) error {
	names, err := application.Rooms().List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cmdRecent(application *app.Application) error {
	names, err := application.Rooms().Recent()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cmdShow(application *app.Application, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: roomstorm show <name>")
	}
	r, err := application.Rooms().Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s  %dx%d\n", r.Name, r.Width, r.Height)
	for _, l := range r.Layers {
		vis := "visible"
		if !l.Visible {
			vis = "hidden"
		}
		fmt.Printf("  layer %-16s %-6s depth=%d %s tiles=%d\n",
			l.Name, l.Type, l.Depth, vis, len(l.Tiles))
	}
	fmt.Printf("  instances=%d\n", len(r.Instances))
	return nil
}

func cmdExport(application *app.Application, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: roomstorm export [flags] <name>")
	}
	data, err := application.ExportRoom(fs.Arg(0))
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(*out, data, 0o640)
}

func parseFlags() (app.Options, []string, bool) {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.StoreDriver, "store", "", "Store driver (fs, sqlite, memory)")
	flag.StringVar(&opts.StorePath, "store-path", "", "Store location (directory or database file)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = usage
	flag.Parse()

	return opts, flag.Args(), showVersion
}

func usage() {
	fmt.Fprintf(os.Stderr, `roomstorm - tile/object room document editor

Usage:
  roomstorm [flags] <command> [args]

Commands:
  new [-width N] [-height N] <name>   Create and persist an empty room
  list                                List stored rooms
  recent                              List recently used rooms
  show <name>                         Print a room summary
  export [-o file] <name>             Export a room for the game engine

Flags:
`)
	flag.PrintDefaults()
}
