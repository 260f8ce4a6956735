package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/engine"
	"dump-salvage/internal/extract"
	"dump-salvage/internal/insert"
)

func TestWriteSample(t *testing.T) {
	var buf bytes.Buffer
	n, err := engine.WriteSample(&buf, engine.SampleOptions{Posts: 120, RowsPerInsert: 50, Seed: 7, Quote: "`", Noise: true})
	if err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if n != 120 {
		t.Errorf("Expected 120 rows, got %d", n)
	}

	block, err := extract.Extract(buf.String(), "wp_posts", nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if block.Create() == nil || block.Drop() == nil {
		t.Error("Expected drop and create for wp_posts")
	}
	if len(block.Inserts()) != 3 {
		t.Errorf("Expected 3 insert statements, got %d", len(block.Inserts()))
	}

	b := insert.Normalize(block, &dialect.MysqlDialect{})
	if b.Rows() != 120 {
		t.Errorf("Expected 120 tuples, got %d", b.Rows())
	}
	if !strings.HasPrefix(b.Statements[0].Dropped, "ON DUPLICATE KEY UPDATE") {
		t.Errorf("Expected upsert clause on first statement, got %q", b.Statements[0].Dropped)
	}
	for _, st := range b.Statements {
		if st.Malformed {
			t.Errorf("Statement at line %d is malformed", st.Line)
		}
	}
}

func TestWriteSample_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	opts := engine.SampleOptions{Posts: 10, Seed: 42}
	if _, err := engine.WriteSample(&a, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.WriteSample(&b, opts); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("Expected identical dumps for the same seed")
	}
}
