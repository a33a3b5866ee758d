// Package parserpool provides a pool of gnparser instances for
// concurrent scientific-name parsing. This is a pure package - parsing
// is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances.
type Pool interface {
	// Parse parses a scientific name string. It retrieves a parser
	// from the pool, parses the name, and returns the parser to the
	// pool. Safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a scientific
	// name (authorship and annotations stripped), or an empty string
	// when the name does not parse.
	Canonical(nameString string) string

	// Close shuts down the pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of
// workers. If jobsNum is 0, it defaults to runtime.NumCPU(). Checklist
// rows do not tag a nomenclatural code, so a single default-code pool
// serves all sources.
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig()
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Parse parses a scientific name string using a pooled parser.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	// Get a parser from the pool (blocks if all parsers are busy)
	parser := <-p.ch

	result := parser.ParseName(nameString)

	// Return the parser to the pool
	p.ch <- parser

	return result
}

// Canonical returns the simple canonical form, or "" on no parse.
func (p *PoolImpl) Canonical(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

// Close shuts down the pool and drains remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
