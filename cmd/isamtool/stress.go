package main

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sort"

	"github.com/npillmayer/isam"
	"github.com/npillmayer/isam/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newStressCmd(conf *Config) *cobra.Command {
	var (
		n     int
		seed  int64
		check int
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run random operations against a vector and a multi-map, verified by models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check <= 0 {
				check = 1
			}
			return stress(cmd.OutOrStdout(), conf, n, seed, check)
		},
	}
	cmd.Flags().IntVar(&n, "n", 10000, "number of operations")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&check, "check-every", 100, "operations between structural checks")
	return cmd
}

func stress(out io.Writer, conf *Config, n int, seed int64, check int) error {
	r := rand.New(rand.NewSource(seed))
	vec, err := isam.NewVector[int](conf.options("vector")...)
	if err != nil {
		return err
	}
	mm, err := isam.NewMultiMap[int, int](conf.options("multimap")...)
	if err != nil {
		return err
	}
	var vmodel []int
	var mmodel []int // keys only
	for step := range n {
		if err := stressVector(vec, &vmodel, r, step); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if err := stressMultiMap(mm, &mmodel, r, step); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if step%check == 0 {
			if err := vec.Check(); err != nil {
				return err
			}
			if err := mm.Check(); err != nil {
				return err
			}
		}
	}
	if err := verifyVector(vec, vmodel); err != nil {
		return err
	}
	collector := stats.NewCollector()
	collector.Add(vec)
	collector.Add(mm)
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return err
	}
	return printMetrics(out, reg)
}

func stressVector(vec *isam.Vector[int], model *[]int, r *rand.Rand, step int) error {
	m := *model
	if len(m) == 0 || r.Intn(5) < 3 {
		i := r.Intn(len(m) + 1)
		if err := vec.InsertAt(i, step); err != nil {
			return err
		}
		*model = slices.Insert(m, i, step)
		return nil
	}
	i := r.Intn(len(m))
	x, err := vec.RemoveAt(i)
	if err != nil {
		return err
	}
	if x != m[i] {
		return fmt.Errorf("vector: removed %d at %d, expected %d", x, i, m[i])
	}
	*model = slices.Delete(m, i, i+1)
	return nil
}

func stressMultiMap(mm *isam.MultiMap[int, int], model *[]int, r *rand.Rand, step int) error {
	key := r.Intn(100)
	m := *model
	at := sort.SearchInts(m, key+1)
	if r.Intn(5) < 3 {
		rank, err := mm.Add(key, step)
		if err != nil {
			return err
		}
		if rank != at {
			return fmt.Errorf("multimap: key %d added at rank %d, expected %d", key, rank, at)
		}
		*model = slices.Insert(m, at, key)
		return nil
	}
	first := sort.SearchInts(m, key)
	count, err := mm.Count(key)
	if err != nil {
		return err
	}
	if count != at-first {
		return fmt.Errorf("multimap: key %d has %d values, expected %d", key, count, at-first)
	}
	if count == 0 {
		return nil
	}
	if _, err := mm.RemoveFirst(key); err != nil {
		return err
	}
	*model = slices.Delete(m, first, first+1)
	return nil
}

func verifyVector(vec *isam.Vector[int], model []int) error {
	if vec.Len() != len(model) {
		return fmt.Errorf("vector: length %d, expected %d", vec.Len(), len(model))
	}
	for i, x := range vec.All() {
		if model[i] != x {
			return fmt.Errorf("vector: element %d is %d, expected %d", i, x, model[i])
		}
	}
	return nil
}

// printMetrics prints all gathered samples as "name{labels} value" lines.
func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			labels := ""
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf("%s=%s ", l.GetName(), l.GetValue())
			}
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			fmt.Fprintf(out, "%-45s %s%.0f\n", fam.GetName(), labels, value)
		}
	}
	return nil
}
