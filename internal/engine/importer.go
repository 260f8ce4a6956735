package engine

import (
	"fmt"
	"io"
	"log"

	"dump-salvage/internal/errors"
	"dump-salvage/internal/insert"
	"dump-salvage/internal/schema"
	"dump-salvage/internal/store"
	"dump-salvage/internal/translate"
)

// maxLoggedFailures caps per-row failure logging.
const maxLoggedFailures = 3

// Importer writes one table's structure and data into a store.
type Importer struct {
	Store      *store.Store
	Logger     *log.Logger
	OnProgress func() // called once per data statement

	logged int
}

// NewImporter returns an Importer for s that logs to logger (nil discards).
func NewImporter(s *store.Store, logger *log.Logger, onProgress func()) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{Store: s, Logger: logger, OnProgress: onProgress}
}

// Import applies the canonical structure, then the translated one, then every
// statement of the batch with row-level fallback. Only failures of the store
// itself are returned; everything else is recorded on the Result.
func (im *Importer) Import(ts translate.Schema, batch *insert.Batch) (*Result, error) {
	if im.Logger == nil {
		im.Logger = log.New(io.Discard, "", 0)
	}
	table := im.Store.Table
	res := &Result{Table: table}

	if err := im.applyCanonical(); err != nil {
		return nil, err
	}

	applied, err := im.applyTranslated(ts, res)
	if err != nil {
		return nil, err
	}
	res.FallbackUsed = !applied

	// Positional rows follow the source column order, which the fallback
	// table can serve only when it has every source column.
	var positional []string
	if applied || schema.Covers(schema.Canonical(table), ts.Columns) {
		positional = ts.Columns
	}

	for _, st := range batch.Statements {
		out := im.importStatement(st, positional)
		res.Outcomes = append(res.Outcomes, out)
		res.Attempted += out.Rows
		res.Imported += out.Imported
		res.Lost += out.Lost
		if out.Status == Dropped {
			res.AnyInsertFailed = true
		}
		if out.Err != nil {
			res.Warnings = append(res.Warnings, errors.Wrap(errors.StatementFailure,
				fmt.Sprintf("statement at line %d: %s, %d/%d rows", out.Line, out.Status, out.Imported, out.Rows), out.Err))
		}
		if im.OnProgress != nil {
			im.OnProgress()
		}
	}

	return im.report(res)
}

// applyCanonical (re)creates the table with the canonical structure.
func (im *Importer) applyCanonical() error {
	db, d, table := im.Store.DB, im.Store.Dialect, im.Store.Table
	if _, err := db.Exec(d.DropTableQuery(table)); err != nil {
		return errors.Wrap(errors.StoreFailure, "failed to drop "+table, err)
	}
	if _, err := db.Exec(schema.CreateQuery(d, schema.Canonical(table))); err != nil {
		return errors.Wrap(errors.StoreFailure, "failed to create fallback structure", err)
	}
	return nil
}

// applyTranslated replaces the canonical table with the translated one and
// adds any canonical column it lacks. On failure the canonical table is put
// back and false is returned.
func (im *Importer) applyTranslated(ts translate.Schema, res *Result) (bool, error) {
	if ts.Empty() {
		im.Logger.Printf("No structure for %s in dump, using fallback structure", im.Store.Table)
		return false, nil
	}
	db, d, table := im.Store.DB, im.Store.Dialect, im.Store.Table

	fail := func(msg string, cause error) (bool, error) {
		im.Logger.Printf("Warning: %s: %v. Using fallback structure.", msg, cause)
		res.Warnings = append(res.Warnings, errors.Wrap(errors.TranslationFailure, msg, cause))
		return false, im.applyCanonical()
	}

	if _, err := db.Exec(d.DropTableQuery(table)); err != nil {
		return false, errors.Wrap(errors.StoreFailure, "failed to drop fallback structure", err)
	}
	if _, err := db.Exec(ts.SQL); err != nil {
		return fail("translated structure rejected", err)
	}

	cols, err := schema.Columns(db, d, table)
	if err != nil {
		return fail("cannot inspect translated structure", err)
	}
	if len(cols) == 0 {
		return fail("translated structure did not create "+table, fmt.Errorf("no columns found"))
	}
	missing := schema.Missing(schema.Canonical(table), cols)
	for _, c := range missing {
		if _, err := db.Exec(d.AddColumnQuery(table, c.Name, schema.ColumnType(d, c))); err != nil {
			return fail("cannot add canonical column "+c.Name, err)
		}
	}
	if len(missing) > 0 {
		im.Logger.Printf("Added %d canonical columns missing from translated structure", len(missing))
	}
	return true, nil
}

// importStatement runs st as a whole, falling back to one statement per row.
func (im *Importer) importStatement(st insert.Statement, positional []string) StatementOutcome {
	out := StatementOutcome{Line: st.Line, Rows: len(st.Tuples)}
	if st.Malformed {
		// The unreadable remainder counts as one lost row.
		out.Lost++
		out.Err = fmt.Errorf("statement could not be fully read")
	}
	if len(st.Tuples) == 0 {
		out.Status = Dropped
		return out
	}

	if st.Dropped != "" {
		im.Logger.Printf("Statement at line %d: ignoring trailing clause %.60q", st.Line, st.Dropped)
	}

	d, table := im.Store.Dialect, im.Store.Table
	cols := st.Columns
	if len(cols) == 0 {
		cols = positional
	}

	_, err := im.Store.DB.Exec(insert.Render(d, table, cols, st.Tuples))
	if err == nil {
		out.Imported = len(st.Tuples)
		if st.Malformed {
			out.Status = Decomposed
		}
		return out
	}
	if out.Err == nil {
		out.Err = err
	}
	im.logFailure(st.Line, err)

	if len(st.Tuples) > 1 {
		for _, t := range st.Tuples {
			if _, err := im.Store.DB.Exec(insert.Render(d, table, cols, []string{t})); err != nil {
				im.logFailure(st.Line, err)
				continue
			}
			out.Imported++
		}
	}
	out.Lost += len(st.Tuples) - out.Imported
	if out.Imported == 0 {
		out.Status = Dropped
	} else {
		out.Status = Decomposed
	}
	return out
}

func (im *Importer) logFailure(line int, err error) {
	if im.logged >= maxLoggedFailures {
		return
	}
	im.logged++
	im.Logger.Printf("[DEBUG] Statement at line %d failed: %v", line, err)
}

// report fills in what the store itself says about the result.
func (im *Importer) report(res *Result) (*Result, error) {
	db, d := im.Store.DB, im.Store.Dialect
	tables, err := schema.Tables(db, d)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, "failed to list tables", err)
	}
	res.Tables = tables

	if err := db.QueryRow(d.CountQuery(res.Table)).Scan(&res.Rows); err != nil {
		return nil, errors.Wrap(errors.StoreFailure, "failed to count rows of "+res.Table, err)
	}
	return res, nil
}
