package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kevinwang15/jsonedit"
	"github.com/scott-cotton/cli"
)

func jsoneditMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func locatorArg(args []string) (jsonedit.Path, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing locator", cli.ErrUsage)
	}
	p, err := jsonedit.ParsePath(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, nil
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	return getValue(cfg, cc.Out, args)
}

func getValue(cfg *GetConfig, w io.Writer, args []string) error {
	path, err := locatorArg(args)
	if err != nil {
		return err
	}
	doc, err := cfg.readDocument(fileArg(args, 1))
	if err != nil {
		return err
	}
	v, ok := jsonedit.Get(doc.root, path)
	if !ok {
		return fmt.Errorf("%s in %s: %w", path, doc.name, jsonedit.ErrNotFound)
	}
	out, err := cfg.encode(v, doc.text)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	return setValue(cfg, cc.Out, args)
}

// setValue replaces the value at args[0] with the JSON text args[1] in the
// document args[2] (stdin when absent).
func setValue(cfg *SetConfig, w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a locator and a JSON value", cli.ErrUsage)
	}
	path, err := locatorArg(args)
	if err != nil {
		return err
	}
	file := fileArg(args, 2)
	if cfg.Write && file == "-" {
		return fmt.Errorf("%w: -w needs a file argument", cli.ErrUsage)
	}
	doc, err := cfg.readDocument(file)
	if err != nil {
		return err
	}

	// The store holds canonical JSON whatever the input format.
	seed, err := jsonedit.Marshal(doc.root)
	if err != nil {
		return err
	}
	store := jsonedit.NewStore(string(seed), jsonedit.WithLogger(cfg.logger()))
	ch, changed, err := store.Apply(path, args[1])
	if err != nil {
		return fmt.Errorf("error setting %s in %s: %w", path, doc.name, err)
	}
	if !changed {
		cfg.logger().Info("document unchanged", "path", path.String(), "file", doc.name)
	}
	root, err := store.Root()
	if err != nil {
		return err
	}
	out, err := cfg.encode(root, doc.text)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	if cfg.Diff {
		if err := printDiff(cfg.MainConfig, w, doc, out); err != nil {
			return err
		}
	} else if !cfg.Write {
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	if cfg.Write && changed {
		if err := writeFile(file, out); err != nil {
			return fmt.Errorf("error writing %s: %w", file, err)
		}
		cfg.logger().Debug("wrote document", "file", file, "version", ch.Version)
	}
	return nil
}

func printDiff(cfg *MainConfig, w io.Writer, doc *document, out []byte) error {
	d, err := jsonedit.Diff(doc.name, string(doc.text), string(out))
	if err != nil {
		return err
	}
	add := cfg.painter(w, color.FgGreen)
	del := cfg.painter(w, color.FgRed)
	hunk := cfg.painter(w, color.FgCyan)
	for _, ln := range strings.SplitAfter(d, "\n") {
		switch {
		case strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"):
		case strings.HasPrefix(ln, "+"):
			ln = add(ln)
		case strings.HasPrefix(ln, "-"):
			ln = del(ln)
		case strings.HasPrefix(ln, "@@"):
			ln = hunk(ln)
		}
		if _, err := fmt.Fprint(w, ln); err != nil {
			return err
		}
	}
	return nil
}

func show(cfg *ShowConfig, cc *cli.Context, args []string) error {
	return showNode(cfg, cc.Out, args)
}

func showNode(cfg *ShowConfig, w io.Writer, args []string) error {
	path, err := locatorArg(args)
	if err != nil {
		return err
	}
	doc, err := cfg.readDocument(fileArg(args, 1))
	if err != nil {
		return err
	}
	node, ok := jsonedit.Get(doc.root, path)
	if !ok {
		return fmt.Errorf("%s in %s: %w", path, doc.name, jsonedit.ErrNotFound)
	}
	head := cfg.painter(w, color.Bold)
	link := cfg.painter(w, color.FgBlue)

	rows := jsonedit.Rows(node)
	fmt.Fprintln(w, head(jsonedit.FormatPath(path)))
	fmt.Fprintln(w, jsonedit.NormalizeForEdit(rows))
	for i, r := range rows {
		if r.Kind == jsonedit.RowPrimitive {
			continue
		}
		seg := jsonedit.Index(i)
		if r.Key != nil {
			seg = jsonedit.Key(*r.Key)
		}
		fmt.Fprintf(w, "  %s %s (%d)\n", link(path.Child(seg)), r.Kind, r.Value.Len())
	}
	return nil
}

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	return printPatch(cfg, cc.Out, args)
}

func printPatch(cfg *PatchConfig, w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: patch requires a locator and a JSON value", cli.ErrUsage)
	}
	path, err := locatorArg(args)
	if err != nil {
		return err
	}
	v, err := jsonedit.Parse([]byte(args[1]))
	if err != nil {
		return err
	}
	doc, err := cfg.readDocument(fileArg(args, 2))
	if err != nil {
		return err
	}
	p, err := jsonedit.ReplacePatch(doc.root, path, v)
	if err != nil {
		return fmt.Errorf("error building patch for %s: %w", path, err)
	}
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
