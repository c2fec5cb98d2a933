package btree

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Data nodes are drawn as boxes listing their keys,
// index nodes as circles labeled with their cumulative count. Dashed edges
// connect ultra siblings.
func (t *Tree[K, V]) WriteDot(w io.Writer) error {
	if err := t.usable(); err != nil {
		return err
	}
	var nodelist, edgelist strings.Builder
	err := t.Walk(func(info NodeInfo[K]) bool {
		if info.Leaf {
			keys := make([]string, len(info.Keys))
			for i, k := range info.Keys {
				keys[i] = dotEscape(fmt.Sprint(k))
			}
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", info.ID,
				strings.Join(keys, " | "), dotStyles(true))
		} else {
			fmt.Fprintf(&nodelist, "\"%d\" [label=%d %s];\n", info.ID, info.Count, dotStyles(false))
		}
		if info.Parent != 0 {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", info.Parent, info.ID)
		}
		return true
	})
	if err != nil {
		return err
	}
	for i, nd := range t.nodes.nodes {
		if nd.live && !nd.ultra.isNone() {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [style=dashed,constraint=false];\n",
				i+1, nd.ultra.slot)
		}
	}
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	_, err = io.WriteString(w, "}\n")
	return err
}

func dotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
