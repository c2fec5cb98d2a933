/*
Package stats exports gauges and counters of isam collections as Prometheus
metrics.

A Collector reads the statistics of its registered collections whenever it is
scraped; collections do not push anything.

	c := stats.NewCollector()
	c.Add(myMap)
	prometheus.MustRegister(c)

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package stats

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/isam/btree"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "isam"
	metricsSubsystem = "collection"
)

// ErrDuplicateSource is returned when adding a second source with the name
// of a registered one.
var ErrDuplicateSource = errors.New("stats: duplicate collection name")

// Source is anything reporting tree statistics, most notably the collections
// of package isam.
type Source interface {
	Name() string
	Stats() btree.Stats
}

// Collector is a prometheus.Collector over a set of sources. It is safe for
// concurrent use.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]Source

	elements   *prometheus.Desc
	height     *prometheus.Desc
	nodes      *prometheus.Desc
	events     *prometheus.Desc
	migrations *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector without sources.
func NewCollector() *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(metricsNamespace, metricsSubsystem, n)
	}
	labels := []string{"collection"}
	return &Collector{
		sources: make(map[string]Source),
		elements: prometheus.NewDesc(name("elements"),
			"Number of elements in the collection", labels, nil),
		height: prometheus.NewDesc(name("height"),
			"Height of the collection's tree; 0 for an empty tree", labels, nil),
		nodes: prometheus.NewDesc(name("nodes"),
			"Number of live tree nodes", labels, nil),
		events: prometheus.NewDesc(name("structural_events_total"),
			"Structural tree changes by kind", append(labels, "kind"), nil),
		migrations: prometheus.NewDesc(name("migrations_total"),
			"Entries moved between sibling nodes", labels, nil),
	}
}

// Add registers a source. Source names must be unique.
func (c *Collector) Add(src Source) error {
	if src == nil {
		return errors.New("stats: nil source")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	name := src.Name()
	if _, ok := c.sources[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSource, name)
	}
	c.sources[name] = src
	return nil
}

// Remove unregisters the source with the given name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Names returns the names of all registered sources in ascending order.
func (c *Collector) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sources))
	for n := range c.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.elements
	ch <- c.height
	ch <- c.nodes
	ch <- c.events
	ch <- c.migrations
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, src := range c.sources {
		s := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.elements, prometheus.GaugeValue, float64(s.Len), name)
		ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(s.Height), name)
		ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(s.Nodes), name)
		for _, ev := range []struct {
			kind  btree.EventKind
			count uint64
		}{
			{btree.EventSpawn, s.Spawns},
			{btree.EventDissolve, s.Dissolves},
			{btree.EventGrow, s.Grows},
			{btree.EventShrink, s.Shrinks},
		} {
			ch <- prometheus.MustNewConstMetric(c.events, prometheus.CounterValue,
				float64(ev.count), name, ev.kind.String())
		}
		ch <- prometheus.MustNewConstMetric(c.migrations, prometheus.CounterValue, float64(s.Migrations), name)
	}
}
