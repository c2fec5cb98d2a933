package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/isam/btree"
	"github.com/xlab/treeprint"
	"golang.org/x/term"
)

// palette holds the colors of console output.
type palette struct {
	key   *color.Color
	doc   *color.Color
	index *color.Color
}

// newPalette creates colors which are active if configured so, or if w is a
// terminal.
func newPalette(conf *Config, w io.Writer) palette {
	p := palette{
		key:   color.New(color.FgBlue),
		doc:   color.New(color.FgGreen),
		index: color.New(color.FgRed, color.Bold),
	}
	enable := conf.Color == "always"
	if conf.Color == "auto" {
		if f, ok := w.(*os.File); ok {
			enable = term.IsTerminal(int(f.Fd()))
		}
	}
	for _, c := range []*color.Color{p.key, p.doc, p.index} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// renderTree formats the node structure of a tree as an indented text tree.
// Index nodes show their cumulative count, data nodes their keys.
func renderTree[K any](walk func(func(btree.NodeInfo[K]) bool) error, p palette) (string, error) {
	root := treeprint.New()
	branches := map[int]treeprint.Tree{}
	err := walk(func(info btree.NodeInfo[K]) bool {
		parent, ok := branches[info.Parent]
		if !ok {
			parent = root
		}
		if info.Leaf {
			keys := make([]string, len(info.Keys))
			for i, k := range info.Keys {
				keys[i] = fmt.Sprint(k)
			}
			parent.AddNode(p.key.Sprint(strings.Join(keys, " ")))
			return true
		}
		label := p.index.Sprintf("#%d", info.ID) + fmt.Sprintf(" (%d)", info.Count)
		if !ok {
			root.SetValue(label)
			branches[info.ID] = root
		} else {
			branches[info.ID] = parent.AddBranch(label)
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return root.String(), nil
}
