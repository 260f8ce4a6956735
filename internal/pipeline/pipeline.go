// Package pipeline runs one salvage: extract the table from a dump, translate
// its structure, and import structure and data into a fresh store.
package pipeline

import (
	"io"
	"log"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/engine"
	"dump-salvage/internal/extract"
	"dump-salvage/internal/insert"
	"dump-salvage/internal/schema"
	"dump-salvage/internal/store"
	"dump-salvage/internal/translate"
)

// State is a step of a run.
type State int

const (
	Idle State = iota
	Extracting
	Translating
	StructureImport
	DataImport
	Reporting
	Done
	NotFound
)

var stateNames = [...]string{"idle", "extracting", "translating", "structure-import", "data-import", "reporting", "done", "not-found"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Options configures a run.
type Options struct {
	Dialect  dialect.Dialect // nil means sqlite
	Location string          // sqlite file or server DSN; empty uses the default file
	Table    string          // empty means wp_posts
	Logger   *log.Logger
	// OnStart is called with the number of data statements before any is run.
	OnStart    func(statements int)
	OnProgress func()
}

// Runner executes runs and remembers the state it reached.
type Runner struct {
	opts  Options
	state State
}

func New(opts Options) *Runner {
	if opts.Dialect == nil {
		opts.Dialect = &dialect.SQLiteDialect{}
	}
	if opts.Table == "" {
		opts.Table = schema.DefaultTable
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Runner{opts: opts}
}

// State returns the last state entered.
func (r *Runner) State() State { return r.state }

func (r *Runner) enter(s State) {
	r.opts.Logger.Printf("[%s] %s -> %s", r.opts.Table, r.state, s)
	r.state = s
}

// Run salvages the table from raw. A NotFound error is returned before any
// store is created or reset. The store is closed, not destroyed, on return.
func (r *Runner) Run(raw []byte) (*engine.Result, error) {
	r.state = Idle
	d, table := r.opts.Dialect, r.opts.Table

	r.enter(Extracting)
	block, err := extract.Extract(extract.Decode(raw), table, r.opts.Logger)
	if err != nil {
		r.enter(NotFound)
		return nil, err
	}

	if drop := block.Drop(); drop != nil {
		r.opts.Logger.Printf("Found DROP TABLE for %s at line %d", table, drop.Line)
	}
	for _, f := range block.Fragments {
		if !f.Terminated {
			r.opts.Logger.Printf("Warning: %s statement at line %d runs to the end of the dump without a terminator", f.Kind, f.Line)
		}
	}

	r.enter(Translating)
	var ts translate.Schema
	if c := block.Create(); c != nil {
		ts = translate.Translate(c.SQL, table, d)
	}
	batch := insert.Normalize(block, d)
	r.opts.Logger.Printf("Normalized %d data statements holding %d rows", len(batch.Statements), batch.Rows())

	r.enter(StructureImport)
	s, err := store.Create(d, r.opts.Location, table)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	r.enter(DataImport)
	if r.opts.OnStart != nil {
		r.opts.OnStart(len(batch.Statements))
	}
	im := engine.NewImporter(s, r.opts.Logger, r.opts.OnProgress)
	res, err := im.Import(ts, batch)
	if err != nil {
		return nil, err
	}

	r.enter(Reporting)
	if block.Discarded > 0 {
		r.opts.Logger.Printf("%d CREATE TABLE statements for %s were discarded", block.Discarded, table)
	}
	r.opts.Logger.Printf("%s: %d rows, fallback=%t, status %s", table, res.Rows, res.FallbackUsed, res.Status())

	r.enter(Done)
	return res, nil
}

// Run is a one-off run with opts.
func Run(raw []byte, opts Options) (*engine.Result, error) {
	return New(opts).Run(raw)
}

// TranslateOnly extracts the table's structure from raw and returns it
// translated for opts.Dialect without touching any store.
func TranslateOnly(raw []byte, opts Options) (translate.Schema, *extract.Block, error) {
	r := New(opts)
	block, err := extract.Extract(extract.Decode(raw), r.opts.Table, r.opts.Logger)
	if err != nil {
		return translate.Schema{}, nil, err
	}
	c := block.Create()
	if c == nil {
		return translate.Schema{}, block, nil
	}
	return translate.Translate(c.SQL, r.opts.Table, r.opts.Dialect), block, nil
}
