package pipeline_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/engine"
	"dump-salvage/internal/errors"
	"dump-salvage/internal/pipeline"
)

func options(t *testing.T) pipeline.Options {
	t.Helper()
	return pipeline.Options{Location: filepath.Join(t.TempDir(), "wp_temp.db")}
}

func TestRun_Scenario(t *testing.T) {
	dump := "CREATE TABLE `wp_posts` (ID bigint(20) unsigned, post_title varchar(200)) ENGINE=InnoDB;\n" +
		"INSERT INTO `wp_posts` VALUES (1,'Hello'),(2,'World');\n"

	r := pipeline.New(options(t))
	res, err := r.Run([]byte(dump))
	require.NoError(t, err)

	assert.Equal(t, pipeline.Done, r.State())
	assert.Equal(t, 2, res.Rows)
	assert.False(t, res.FallbackUsed)
	assert.False(t, res.AnyInsertFailed)
}

func TestRun_NotFoundLeavesStoreUntouched(t *testing.T) {
	opts := options(t)
	require.NoError(t, os.WriteFile(opts.Location, []byte("previous run"), 0o644))

	r := pipeline.New(opts)
	_, err := r.Run([]byte("CREATE TABLE wp_users (ID int);\nINSERT INTO wp_users VALUES (1);"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound))
	assert.Equal(t, pipeline.NotFound, r.State())

	data, err := os.ReadFile(opts.Location)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(data))
}

func TestRun_Idempotent(t *testing.T) {
	var buf bytes.Buffer
	_, err := engine.WriteSample(&buf, engine.SampleOptions{Posts: 30, RowsPerInsert: 7, Seed: 3, Quote: "`", Noise: true})
	require.NoError(t, err)

	opts := options(t)
	first, err := pipeline.Run(buf.Bytes(), opts)
	require.NoError(t, err)
	second, err := pipeline.Run(buf.Bytes(), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 30, second.Rows)
	assert.False(t, second.FallbackUsed)
}

func TestRun_QuotingInvariance(t *testing.T) {
	var results []*engine.Result
	for _, q := range []string{"`", `"`, ""} {
		var buf bytes.Buffer
		_, err := engine.WriteSample(&buf, engine.SampleOptions{Posts: 12, RowsPerInsert: 5, Seed: 11, Quote: q})
		require.NoError(t, err)

		res, err := pipeline.Run(buf.Bytes(), options(t))
		require.NoError(t, err, "quote %q", q)
		results = append(results, res)
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
	assert.Equal(t, 12, results[0].Rows)
}

func TestRun_MalformedCreateKeepsData(t *testing.T) {
	dump := "CREATE TABLE wp_posts (ID bigint(20), post_title varchar(200);\n" +
		"INSERT INTO wp_posts (ID, post_title) VALUES (1,'a'),(2,'b');\n"

	res, err := pipeline.Run([]byte(dump), options(t))
	require.NoError(t, err)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, 2, res.Rows)
}

func TestRun_EmbeddedTerminatorPreserved(t *testing.T) {
	opts := options(t)
	dump := "INSERT INTO wp_posts (ID, post_title) VALUES (1,'a;b'),(2,'it\\'s (fine), ok; really');\n"

	res, err := pipeline.Run([]byte(dump), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, "OK", res.Status())
}

// Dumps written with NO_BACKSLASH_ESCAPES are read with MySQL's default escape
// rules. A value ending in a backslash keeps its literal open, the statement is
// cut at the ';' inside the next value, and its rows are reported lost.
func TestRun_NoBackslashEscapesDumpLosesStatement(t *testing.T) {
	dump := "INSERT INTO wp_posts (ID, post_title) VALUES (1,'ok');\n" +
		"INSERT INTO wp_posts VALUES (1,'path C:\\'),(2,'x;y');\n"

	res, err := pipeline.Run([]byte(dump), options(t))
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, engine.Succeeded, res.Outcomes[0].Status)
	assert.Equal(t, engine.Dropped, res.Outcomes[1].Status)
	assert.Equal(t, 0, res.Outcomes[1].Rows)
	assert.Equal(t, 1, res.Outcomes[1].Lost)
	assert.True(t, res.AnyInsertFailed)
	assert.Equal(t, 1, res.Rows)
}

func TestRun_OnStartAndProgress(t *testing.T) {
	var buf bytes.Buffer
	_, err := engine.WriteSample(&buf, engine.SampleOptions{Posts: 10, RowsPerInsert: 3, Seed: 5})
	require.NoError(t, err)

	opts := options(t)
	total, ticks := 0, 0
	opts.OnStart = func(n int) { total = n }
	opts.OnProgress = func() { ticks++ }

	_, err = pipeline.Run(buf.Bytes(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, ticks)
}

func TestTranslateOnly(t *testing.T) {
	opts := options(t)
	opts.Dialect = &dialect.MSSQLDialect{}
	ts, block, err := pipeline.TranslateOnly([]byte("CREATE TABLE `wp_posts` (`ID` int) ENGINE=InnoDB;"), opts)
	require.NoError(t, err)

	assert.Equal(t, "CREATE TABLE [wp_posts] (\n  [ID] BIGINT\n);", ts.SQL)
	assert.NotNil(t, block.Create())
	_, err = os.Stat(opts.Location)
	assert.True(t, os.IsNotExist(err))
}

func TestState_String(t *testing.T) {
	names := []string{}
	for s := pipeline.Idle; s <= pipeline.NotFound; s++ {
		names = append(names, s.String())
	}
	assert.Equal(t, "idle extracting translating structure-import data-import reporting done not-found", strings.Join(names, " "))
}

func TestRun_FractionalSecondDefaultsKeepRows(t *testing.T) {
	dump := "CREATE TABLE `wp_posts` (`ID` bigint unsigned NOT NULL, `post_date` datetime(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6), PRIMARY KEY (`ID`)) ENGINE=InnoDB;\n" +
		"INSERT INTO `wp_posts` VALUES (1,'2020-01-01');\n"

	res, err := pipeline.Run([]byte(dump), options(t))
	require.NoError(t, err)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, 1, res.Rows)
	assert.Empty(t, res.Warnings)
}

func TestRun_MissingTupleSeparatorCountsLostRow(t *testing.T) {
	dump := "INSERT INTO wp_posts (ID, post_title) VALUES (1,'a') (2,'b');\n"

	res, err := pipeline.Run([]byte(dump), options(t))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, 1, res.Lost)
	assert.Equal(t, "PARTIAL: 1/2", res.Status())
	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, engine.Decomposed, res.Outcomes[0].Status)
}

func TestRun_LogsDropAndUnterminatedStatements(t *testing.T) {
	var logs bytes.Buffer
	opts := options(t)
	opts.Logger = log.New(&logs, "", 0)

	dump := "DROP TABLE IF EXISTS wp_posts;\nINSERT INTO wp_posts (ID) VALUES (1),(2)"
	res, err := pipeline.Run([]byte(dump), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	out := logs.String()
	assert.Contains(t, out, "Found DROP TABLE for wp_posts at line 1")
	assert.Contains(t, out, "insert statement at line 2 runs to the end of the dump without a terminator")
	assert.Contains(t, out, "Normalized 1 data statements holding 2 rows")
}
