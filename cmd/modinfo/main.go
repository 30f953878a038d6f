// SPDX-License-Identifier: EPL-2.0

// Command modinfo prints what a tracker module contains and can export
// its samples as WAV files.
//
//	modinfo [-format text|yaml] [-start offset] [-extract dir] [-debug] file...
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ik5/modload"
	"github.com/ik5/modload/formats/wav"
	"github.com/ik5/modload/module"
)

type config struct {
	format  string
	start   int64
	extract string
	debug   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.format, "format", "text", "Output format: text or yaml.")
	flag.Int64Var(&cfg.start, "start", 0, "Byte offset of the module inside the file.")
	flag.StringVar(&cfg.extract, "extract", "", "Write every sample as a WAV file into this directory.")
	flag.BoolVar(&cfg.debug, "debug", false, "Log decoder diagnostics to stderr.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	retval := 0
	for _, path := range flag.Args() {
		if err := run(cfg, path, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func run(cfg config, path string, out io.Writer) error {
	if cfg.format != "text" && cfg.format != "yaml" {
		return errors.Errorf("unknown format %q", cfg.format)
	}

	lc := modload.DefaultConfig()
	if cfg.extract == "" {
		lc.Patches = module.SkipPatches{}
	}
	if cfg.debug {
		lc.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := modload.Load(f, cfg.start, lc)
	if err != nil {
		return errors.Wrap(err, path)
	}
	defer m.Release()

	s := summarize(path, m)
	switch cfg.format {
	case "yaml":
		b, err := yaml.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "could not marshal %s as yaml", path)
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
	default:
		s.writeText(out)
	}

	if cfg.extract != "" {
		return extract(cfg.extract, m, out)
	}
	return nil
}

func extract(dir string, m *module.Module, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create output directory %v", dir)
	}

	for i, s := range m.Samples {
		if s.Data == nil || s.Length == 0 {
			continue
		}
		name := filepath.Join(dir, fmt.Sprintf("%02d.wav", i+1))
		if err := writeSample(name, s); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wrote:", name)
	}
	return nil
}

func writeSample(name string, s *module.Sample) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := wav.WriteSample(f, s); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	return f.Close()
}
