package main

import (
	"fmt"
	"math/rand"

	"github.com/npillmayer/isam"
	"github.com/spf13/cobra"
)

func newDumpCmd(conf *Config) *cobra.Command {
	var (
		n      int
		order  string
		format string
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Insert integers into a set and print the resulting tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := keySequence(n, order, seed)
			if err != nil {
				return err
			}
			set, err := isam.NewSet[int](conf.options("dump")...)
			if err != nil {
				return err
			}
			for _, k := range keys {
				if err := set.Add(k); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			switch format {
			case "dot":
				return set.WriteDot(out)
			case "text":
				s, err := renderTree(set.Walk, newPalette(conf, out))
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
				stats := set.Stats()
				fmt.Fprintf(out, "%d elements, height %d, %d nodes\n", stats.Len, stats.Height, stats.Nodes)
				return nil
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of elements")
	cmd.Flags().StringVar(&order, "order", "asc", "insertion order: asc, desc or random")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or dot")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for --order random")
	return cmd
}

// keySequence returns the integers 0..n-1 in the requested order.
func keySequence(n int, order string, seed int64) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative element count %d", n)
	}
	keys := make([]int, n)
	switch order {
	case "asc":
		for i := range keys {
			keys[i] = i
		}
	case "desc":
		for i := range keys {
			keys[i] = n - 1 - i
		}
	case "random":
		keys = rand.New(rand.NewSource(seed)).Perm(n)
	default:
		return nil, fmt.Errorf("unknown order %q", order)
	}
	return keys, nil
}
