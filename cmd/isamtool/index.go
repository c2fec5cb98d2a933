package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/isam/wordindex"
	"github.com/spf13/cobra"
)

func newIndexCmd(conf *Config) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "index FILE...",
		Short: "Index documents and print the most frequent words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				top = conf.Top
			}
			ix, err := buildIndex(conf, args)
			if err != nil {
				return err
			}
			words, err := ix.Top(top)
			if err != nil {
				return err
			}
			p := newPalette(conf, cmd.OutOrStdout())
			for _, wc := range words {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", wc.Count, p.key.Sprint(wc.Word))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of words to print")
	return cmd
}

func newLookupCmd(conf *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup WORD FILE...",
		Short: "Print all occurrences of a word",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := buildIndex(conf, args[1:])
			if err != nil {
				return err
			}
			occs, err := ix.Lookup(args[0])
			if err != nil {
				return err
			}
			p := newPalette(conf, cmd.OutOrStdout())
			for _, occ := range occs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", p.doc.Sprint(occ.Doc), occ.Offset)
			}
			if len(occs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%q not found\n", args[0])
			}
			return nil
		},
	}
}

// buildIndex indexes files, treating *.html and *.htm as HTML.
func buildIndex(conf *Config, files []string) (*wordindex.Index, error) {
	ix, err := wordindex.New(conf.LockTimeout, conf.options("words")...)
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		if err := indexFile(ix, name); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

func indexFile(ix *wordindex.Index, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var r io.Reader = f
	var n int
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		n, err = ix.AddHTML(name, r)
	default:
		n, err = ix.Add(name, r)
	}
	if err != nil {
		return fmt.Errorf("indexing %s: %w", name, err)
	}
	T().Infof("isamtool: %s: %d words", name, n)
	return nil
}
