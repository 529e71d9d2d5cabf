package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/kevinwang15/jsonedit"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Y       bool `cli:"name=y aliases=yaml desc='read and write YAML instead of JSON'"`
	Verbose bool `cli:"name=v desc='log edits to stderr'"`
	NoColor bool `cli:"name=nocolor desc='never use color'"`

	Main *cli.Command
	log  *slog.Logger
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		cfg.log = newLogger(os.Stderr, cfg.Verbose)
	}
	return cfg.log
}

type GetConfig struct {
	*cli.Command
	*MainConfig
}

type SetConfig struct {
	*cli.Command
	*MainConfig

	Write bool `cli:"name=w desc='write the result back to the file'"`
	Diff  bool `cli:"name=d desc='print a unified diff instead of the document'"`
}

type ShowConfig struct {
	*cli.Command
	*MainConfig
}

type PatchConfig struct {
	*cli.Command
	*MainConfig
}

// document is one input file and the value it holds.
type document struct {
	name string
	text []byte
	root *jsonedit.Value
}

func (cfg *MainConfig) readDocument(file string) (*document, error) {
	var (
		data []byte
		err  error
	)
	name := file
	if file == "" || file == "-" {
		name = "<stdin>"
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	var root *jsonedit.Value
	if cfg.Y {
		root, err = jsonedit.ParseYAML(data)
	} else {
		root, err = jsonedit.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return &document{name: name, text: data, root: root}, nil
}

// encode renders v in the configured format. YAML output follows the style
// of the input text.
func (cfg *MainConfig) encode(v *jsonedit.Value, like []byte) ([]byte, error) {
	if !cfg.Y {
		out, err := jsonedit.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
	indent, seq := jsonedit.DetectYAMLStyle(like)
	return jsonedit.MarshalYAML(v, jsonedit.Indent(indent), jsonedit.IndentSequence(seq))
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) painter(w io.Writer, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if cfg.colorize(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// writeFile replaces file with data via a temporary file in the same
// directory, so readers never see a partial document.
func writeFile(file string, data []byte) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(file); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

func fileArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "-"
}
