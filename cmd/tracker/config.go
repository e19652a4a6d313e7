package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/agalitsyn/flagutils"

	"github.com/agalitsyn/meetup-tasks/version"
)

const EnvPrefix = "MEETUP_TASKS"

type Config struct {
	Debug bool
	Demo  bool
	Event string
}

func (c Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(0)
	}
	return string(b)
}

func ParseFlags() Config {
	var cfg Config

	printVersion := flag.Bool("version", false, "Show version.")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging.")
	flag.BoolVar(&cfg.Demo, "demo", false, "Seed the session with sample events and tasks.")
	flag.StringVar(&cfg.Event, "event", "", "Preselect an event by name.")

	flagutils.Prefix = EnvPrefix
	flagutils.Parse()
	flag.Parse()

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	return cfg
}
