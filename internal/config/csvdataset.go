// Package config implements the Config capability (spec.md §4.4's
// per-sampler config merge) plus concrete config elements. CSVDataSet is
// grounded on JMeter's CSVDataSet, a feature original_source/_INDEX.md
// shows but spec.md's distillation dropped (SPEC_FULL.md §4 supplemented
// features).
package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/errs"
)

// CSVDataSet reads a CSV file once and, on each call to Next, assigns the
// next row's columns into a thread's variables under their header names.
// Recycle=true restarts at row 0 once exhausted; otherwise Next returns
// errs.ErrStopTestWorker, matching JMeter's stopThread=true behavior.
type CSVDataSet struct {
	*element.TestElement

	Path      string
	Recycle   bool

	mu      sync.Mutex
	headers []string
	rows    [][]string
	pos     int
}

func NewCSVDataSet(name, path string, recycle bool) *CSVDataSet {
	return &CSVDataSet{
		TestElement: element.NewTestElement(name),
		Path:        path,
		Recycle:     recycle,
	}
}

func (c *CSVDataSet) ComponentType() string { return "csvDataSet" }

func (c *CSVDataSet) Elem() *element.TestElement { return c.TestElement }

// NoConfigMerge: a CSVDataSet is driven explicitly by Next(), not merged
// into a sampler's property bag like an HTTP header manager.
func (c *CSVDataSet) NoConfigMerge() {}

func (c *CSVDataSet) Merge(*element.TestElement) {}

// Load reads the CSV file once at compile/initialize time.
func (c *CSVDataSet) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("csv data set %q: %w", c.Name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("csv data set %q: %w", c.Name, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("csv data set %q: empty file", c.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers = records[0]
	c.rows = records[1:]
	c.pos = 0
	return nil
}

// variableSink is the minimal surface Next needs from a ThreadContext.
type variableSink interface {
	Put(name, value string)
}

// Next assigns the next row's columns into vars under their header names,
// recycling or raising errs.ErrStopTestWorker per c.Recycle when exhausted.
func (c *CSVDataSet) Next(vars variableSink) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.rows) == 0 {
		return fmt.Errorf("csv data set %q: not loaded", c.Name)
	}
	if c.pos >= len(c.rows) {
		if !c.Recycle {
			return errs.ErrStopTestWorker
		}
		c.pos = 0
	}

	row := c.rows[c.pos]
	c.pos++
	for i, header := range c.headers {
		if i < len(row) {
			vars.Put(header, row[i])
		}
	}
	return nil
}
