// Command richdoc converts HTML into raw JSON documents and applies edit
// operations to them from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/tidwall/pretty"

	"github.com/dshills/richdoc/internal/content"
	"github.com/dshills/richdoc/internal/edit"
	"github.com/dshills/richdoc/internal/htmlimport"
	"github.com/dshills/richdoc/internal/rawjson"
	"github.com/dshills/richdoc/internal/renderconfig"
	"github.com/dshills/richdoc/internal/selection"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// CLI defines the command-line interface for richdoc.
var CLI struct {
	Import  ImportCmd  `cmd:"" help:"Convert HTML markup into a raw JSON document"`
	Inspect InspectCmd `cmd:"" help:"Print the block forest of a raw JSON document"`
	Split   SplitCmd   `cmd:"" help:"Split a block at a character offset"`
	Paste   PasteCmd   `cmd:"" help:"Insert a fragment document at a character offset"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("richdoc"),
		kong.Description("Rich text document engine tools"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// readInput reads a file argument, treating "-" as stdin.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeDoc prints a raw document, optionally pretty-printed.
func writeDoc(doc []byte, prettify bool) error {
	if prettify {
		doc = pretty.Pretty(doc)
	} else {
		doc = append(doc, '\n')
	}
	_, err := os.Stdout.Write(doc)
	return err
}

// ImportCmd converts HTML markup into a raw JSON document.
type ImportCmd struct {
	Path        string `arg:"" optional:"" default:"-" help:"HTML file to import, - for stdin"`
	Config      string `help:"Render config TOML overlay" type:"path"`
	Pretty      bool   `help:"Pretty-print the JSON output"`
	Fingerprint bool   `help:"Print the document fingerprint instead of the document"`
}

func (c *ImportCmd) Run() error {
	markup, err := readInput(c.Path)
	if err != nil {
		return err
	}

	cfg := renderconfig.Default()
	if c.Config != "" {
		if cfg, err = renderconfig.LoadTOML(c.Config); err != nil {
			return err
		}
	}

	im := htmlimport.NewImporter(htmlimport.WithConfig(cfg))
	state, err := im.Import(string(markup))
	if err != nil {
		return fmt.Errorf("importing markup: %w", err)
	}

	doc, err := rawjson.Encode(state, im.Registry())
	if err != nil {
		return err
	}
	if c.Fingerprint {
		fmt.Println(rawjson.Fingerprint(doc))
		return nil
	}
	return writeDoc(doc, c.Pretty)
}

// InspectCmd prints the block forest of a raw JSON document.
type InspectCmd struct {
	Path string `arg:"" optional:"" default:"-" help:"Raw JSON document, - for stdin"`
}

func (c *InspectCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	state, _, err := rawjson.Decode(data)
	if err != nil {
		return err
	}

	m := state.BlockMap()
	fmt.Printf("%d block(s), fingerprint %s\n\n", m.Len(), m.Fingerprint())
	printForest(m, "", 0)
	return nil
}

func printForest(m *content.BlockMap, parentKey string, indent int) {
	for _, b := range m.Children(parentKey) {
		fmt.Printf("%*s%s  %s depth=%d  %q\n",
			indent*2, "", b.Key(), b.Type(), b.Depth(), preview(b.Text()))
		printForest(m, b.Key(), indent+1)
	}
}

func preview(text string) string {
	const max = 40
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// SplitCmd splits a block at a character offset.
type SplitCmd struct {
	Path   string `arg:"" optional:"" default:"-" help:"Raw JSON document, - for stdin"`
	Key    string `required:"" help:"Block key to split"`
	Offset int    `required:"" help:"Character offset of the split point"`
	Pretty bool   `help:"Pretty-print the JSON output"`
}

func (c *SplitCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	state, reg, err := rawjson.Decode(data)
	if err != nil {
		return err
	}

	next, err := edit.SplitBlock(state, selection.Collapsed(c.Key, c.Offset), content.RandomKeys())
	if err != nil {
		return fmt.Errorf("splitting %s at %d: %w", c.Key, c.Offset, err)
	}

	doc, err := rawjson.Encode(next, reg)
	if err != nil {
		return err
	}
	return writeDoc(doc, c.Pretty)
}

// PasteCmd inserts a fragment document at a character offset.
type PasteCmd struct {
	Path     string `arg:"" optional:"" default:"-" help:"Raw JSON document, - for stdin"`
	Key      string `required:"" help:"Target block key"`
	Offset   int    `required:"" help:"Character offset of the insertion point"`
	Fragment string `required:"" help:"Raw JSON fragment document" type:"existingfile"`
	Head     bool   `help:"Collapse the selection at the head block instead of after the fragment"`
	Pretty   bool   `help:"Pretty-print the JSON output"`
}

func (c *PasteCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}
	state, reg, err := rawjson.Decode(data)
	if err != nil {
		return err
	}

	fragData, err := os.ReadFile(c.Fragment)
	if err != nil {
		return fmt.Errorf("reading fragment %s: %w", c.Fragment, err)
	}
	fragState, fragReg, err := rawjson.Decode(fragData)
	if err != nil {
		return fmt.Errorf("decoding fragment: %w", err)
	}

	// Fragment entities ride along under their own keys; existing
	// entries win on collision.
	for _, key := range fragReg.Keys() {
		if _, ok := reg.Get(key); !ok {
			e, _ := fragReg.Get(key)
			reg.Put(key, e)
		}
	}

	var opts []edit.InsertOption
	if c.Head {
		opts = append(opts, edit.WithSelectionPolicy(edit.SelectAfterHead))
	}
	next, err := edit.InsertFragment(state, selection.Collapsed(c.Key, c.Offset),
		fragState.BlockMap(), content.RandomKeys(), opts...)
	if err != nil {
		return fmt.Errorf("pasting at %s:%d: %w", c.Key, c.Offset, err)
	}

	doc, err := rawjson.Encode(next, reg)
	if err != nil {
		return err
	}
	return writeDoc(doc, c.Pretty)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("richdoc %s (%s)\n", version, commit)
	return nil
}
