package posts_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/errors"
	"dump-salvage/internal/pipeline"
	"dump-salvage/internal/posts"
	"dump-salvage/internal/store"
)

const dump = `CREATE TABLE wp_posts (ID bigint(20) unsigned NOT NULL, post_title text, post_content longtext,
  post_type varchar(20), post_status varchar(20), post_date datetime, PRIMARY KEY (ID)) ENGINE=InnoDB;
INSERT INTO wp_posts VALUES (1,'Old post','<p>first</p>','post','publish','2019-01-01 10:00:00'),
(2,'About','It\'s us; hi','page','publish','2021-06-01 08:00:00'),
(3,'Logo','','attachment','inherit','2022-01-01 00:00:00'),
(4,'New post','<p>latest</p>','post','draft','2023-03-03 12:00:00');
`

func openReader(t *testing.T) *posts.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wp.db")
	_, err := pipeline.Run([]byte(dump), pipeline.Options{Location: path})
	require.NoError(t, err)

	s, err := store.Open(&dialect.SQLiteDialect{}, path, "wp_posts")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return posts.NewReader(s)
}

func TestList_DefaultTypesNewestFirst(t *testing.T) {
	r := openReader(t)
	list, err := r.List(nil)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, []int64{4, 2, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, posts.Summary{ID: 2, Title: "About", Type: "page", Status: "publish", Date: "2021-06-01 08:00:00"}, list[1])
}

func TestList_Types(t *testing.T) {
	r := openReader(t)
	list, err := r.List([]string{"attachment"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Logo", list[0].Title)
}

func TestGet(t *testing.T) {
	r := openReader(t)
	p, err := r.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "About", p.Title)
	assert.Equal(t, "It's us; hi", p.Content)

	_, err = r.Get(99)
	assert.True(t, errors.IsKind(err, errors.NotFound))
}
