// Package posts reads recovered rows back out of the store.
package posts

import (
	"database/sql"
	"fmt"
	"strings"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/errors"
	"dump-salvage/internal/store"
)

// DefaultTypes are listed when no post type is asked for.
var DefaultTypes = []string{"post", "page"}

// Summary is one row of a listing.
type Summary struct {
	ID     int64
	Title  string
	Type   string
	Status string
	Date   string
}

// Post is a single post with its body.
type Post struct {
	ID      int64
	Title   string
	Content string
}

// Reader queries the recovered table of a store.
type Reader struct {
	db    *sql.DB
	d     dialect.Dialect
	table string
}

func NewReader(s *store.Store) *Reader {
	return &Reader{db: s.DB, d: s.Dialect, table: s.Table}
}

// List returns the posts of the given types, newest first.
func (r *Reader) List(types []string) ([]Summary, error) {
	if len(types) == 0 {
		types = DefaultTypes
	}
	q := r.d.QuoteIdent
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s WHERE %s IN (%s) ORDER BY %s DESC",
		q("ID"), q("post_title"), q("post_type"), q("post_status"), q("post_date"),
		q(r.table), q("post_type"), dialect.Placeholders(len(types), r.d.Placeholder), q("post_date"))

	args := make([]any, len(types))
	for i, t := range types {
		args[i] = t
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, "failed to list "+strings.Join(types, ","), err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var id sql.NullInt64
		var title, typ, status, date sql.NullString
		if err := rows.Scan(&id, &title, &typ, &status, &date); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, Summary{ID: id.Int64, Title: title.String, Type: typ.String, Status: status.String, Date: date.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return out, nil
}

// Get fetches one post by ID. It fails with NotFound when no row matches.
func (r *Reader) Get(id int64) (*Post, error) {
	q := r.d.QuoteIdent
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = %s",
		q("post_title"), q("post_content"), q(r.table), q("ID"), r.d.Placeholder(0))

	var title, content sql.NullString
	err := r.db.QueryRow(query, id).Scan(&title, &content)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.NotFound, fmt.Sprintf("no post with ID %d", id))
	}
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, fmt.Sprintf("failed to read post %d", id), err)
	}
	return &Post{ID: id, Title: title.String, Content: content.String}, nil
}
