package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// SampleOptions controls a synthetic WordPress dump.
type SampleOptions struct {
	Table         string
	Posts         int
	RowsPerInsert int
	Seed          int64 // 0 picks a time-based seed
	Quote         string
	// Noise adds another table, conditional comments and an upsert clause
	// around the posts, the way real phpMyAdmin exports look.
	Noise bool
}

var postTypes = []string{"post", "post", "page", "attachment", "revision", "nav_menu_item"}
var postStatuses = []string{"publish", "publish", "draft", "private", "inherit"}

// WriteSample writes a MySQL dump holding a posts table of opts.Posts rows and
// returns the number of row tuples written for it.
func WriteSample(w io.Writer, opts SampleOptions) (int, error) {
	if opts.Table == "" {
		opts.Table = "wp_posts"
	}
	if opts.RowsPerInsert <= 0 {
		opts.RowsPerInsert = 50
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	q := func(name string) string { return opts.Quote + name + opts.Quote }
	f := gofakeit.New(opts.Seed)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- MySQL dump generated by dump-salvage sample\n--\n-- Host: localhost    Database: wordpress\n")
	fmt.Fprintf(bw, "/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;\n/*!40101 SET NAMES utf8mb4 */;\n\n")

	if opts.Noise {
		fmt.Fprintf(bw, "DROP TABLE IF EXISTS %s;\n", q("wp_options"))
		fmt.Fprintf(bw, "CREATE TABLE %s (\n  %s bigint(20) unsigned NOT NULL AUTO_INCREMENT,\n  %s varchar(191) NOT NULL DEFAULT '',\n  %s longtext NOT NULL,\n  PRIMARY KEY (%s),\n  UNIQUE KEY %s (%s)\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n",
			q("wp_options"), q("option_id"), q("option_name"), q("option_value"), q("option_id"), q("option_name"), q("option_name"))
		fmt.Fprintf(bw, "INSERT INTO %s VALUES (1,'siteurl','%s'),(2,'blogname','%s');\n\n",
			q("wp_options"), mysqlEscape(f.URL()), mysqlEscape(f.Company()))
	}

	fmt.Fprintf(bw, "--\n-- Table structure for table %s\n--\n\n", q(opts.Table))
	fmt.Fprintf(bw, "DROP TABLE IF EXISTS %s;\n", q(opts.Table))
	fmt.Fprintf(bw, "/*!40101 SET @saved_cs_client     = @@character_set_client */;\n")
	fmt.Fprint(bw, createPosts(opts.Table, q))
	fmt.Fprintf(bw, "\nLOCK TABLES %s WRITE;\n", q(opts.Table))

	written := 0
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for written < opts.Posts {
		n := min(opts.RowsPerInsert, opts.Posts-written)
		tuples := make([]string, 0, n)
		for i := 0; i < n; i++ {
			id := written + i + 1
			tuples = append(tuples, samplePost(f, id, f.DateRange(start, end)))
		}
		fmt.Fprintf(bw, "INSERT INTO %s VALUES %s", q(opts.Table), strings.Join(tuples, ","))
		if opts.Noise && written == 0 {
			fmt.Fprint(bw, " ON DUPLICATE KEY UPDATE post_title=VALUES(post_title)")
		}
		fmt.Fprint(bw, ";\n")
		written += n
	}

	fmt.Fprint(bw, "UNLOCK TABLES;\n/*!40101 SET CHARACTER_SET_CLIENT=@OLD_CHARACTER_SET_CLIENT */;\n-- Dump completed\n")
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write sample dump: %w", err)
	}
	return written, nil
}

func createPosts(table string, q func(string) string) string {
	cols := []string{
		"%s bigint(20) unsigned NOT NULL AUTO_INCREMENT",
		"%s bigint(20) unsigned NOT NULL DEFAULT '0'",
		"%s datetime NOT NULL DEFAULT '0000-00-00 00:00:00'",
		"%s datetime NOT NULL DEFAULT '0000-00-00 00:00:00'",
		"%s longtext COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s text COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s text COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s varchar(20) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT 'publish'",
		"%s varchar(20) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT 'open'",
		"%s varchar(20) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT 'open'",
		"%s varchar(255) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT ''",
		"%s varchar(200) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT ''",
		"%s text COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s text COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s datetime NOT NULL DEFAULT '0000-00-00 00:00:00'",
		"%s datetime NOT NULL DEFAULT '0000-00-00 00:00:00'",
		"%s longtext COLLATE utf8mb4_unicode_520_ci NOT NULL",
		"%s bigint(20) unsigned NOT NULL DEFAULT '0'",
		"%s varchar(255) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT ''",
		"%s int(11) NOT NULL DEFAULT '0'",
		"%s varchar(20) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT 'post'",
		"%s varchar(100) COLLATE utf8mb4_unicode_520_ci NOT NULL DEFAULT ''",
		"%s bigint(20) NOT NULL DEFAULT '0'",
	}
	names := []string{"ID", "post_author", "post_date", "post_date_gmt", "post_content", "post_title",
		"post_excerpt", "post_status", "comment_status", "ping_status", "post_password", "post_name",
		"to_ping", "pinged", "post_modified", "post_modified_gmt", "post_content_filtered", "post_parent",
		"guid", "menu_order", "post_type", "post_mime_type", "comment_count"}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", q(table))
	for i, c := range cols {
		fmt.Fprintf(&b, "  "+c+",\n", q(names[i]))
	}
	fmt.Fprintf(&b, "  PRIMARY KEY (%s),\n", q("ID"))
	fmt.Fprintf(&b, "  KEY %s (%s(191)),\n", q("post_name"), q("post_name"))
	fmt.Fprintf(&b, "  KEY %s (%s,%s,%s,%s),\n", q("type_status_date"), q("post_type"), q("post_status"), q("post_date"), q("ID"))
	fmt.Fprintf(&b, "  KEY %s (%s)\n", q("post_parent"), q("post_parent"))
	b.WriteString(") ENGINE=InnoDB AUTO_INCREMENT=1 DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_520_ci;\n")
	return b.String()
}

// samplePost renders one wp_posts tuple. Content carries the characters that
// trip naive splitters: quotes, semicolons, parentheses and newlines.
func samplePost(f *gofakeit.Faker, id int, date time.Time) string {
	title := f.Sentence(f.Number(2, 7))
	content := fmt.Sprintf("<p>%s</p>\n<p>It's (really) %s; isn't it?</p>", f.Paragraph(1, 3, 12, " "), f.Word())
	stamp := date.Format("2006-01-02 15:04:05")
	gmt := date.UTC().Format("2006-01-02 15:04:05")
	slug := strings.ToLower(strings.ReplaceAll(strings.Trim(title, "."), " ", "-"))

	vals := []string{
		fmt.Sprint(id),
		fmt.Sprint(f.Number(1, 5)),
		quoteValue(stamp),
		quoteValue(gmt),
		quoteValue(content),
		quoteValue(title),
		quoteValue(""),
		quoteValue(f.RandomString(postStatuses)),
		quoteValue("open"),
		quoteValue("open"),
		quoteValue(""),
		quoteValue(slug),
		quoteValue(""),
		quoteValue(""),
		quoteValue(stamp),
		quoteValue(gmt),
		quoteValue(""),
		"0",
		quoteValue(fmt.Sprintf("https://example.com/?p=%d", id)),
		"0",
		quoteValue(f.RandomString(postTypes)),
		quoteValue(""),
		fmt.Sprint(f.Number(0, 20)),
	}
	return "(" + strings.Join(vals, ",") + ")"
}

func quoteValue(s string) string {
	return "'" + mysqlEscape(s) + "'"
}

// mysqlEscape escapes s the way mysqldump does inside single quotes.
func mysqlEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\x00", `\0`)
	return r.Replace(s)
}
