package translate_test

import (
	"reflect"
	"strings"
	"testing"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/translate"
)

var sqlite = &dialect.SQLiteDialect{}

func TestTranslate_Basic(t *testing.T) {
	ts := translate.Translate("CREATE TABLE `wp_posts` (ID bigint(20) unsigned, post_title varchar(200)) ENGINE=InnoDB;", "wp_posts", sqlite)

	want := "CREATE TABLE \"wp_posts\" (\n  ID INTEGER,\n  post_title TEXT\n);"
	if ts.SQL != want {
		t.Errorf("Unexpected translation:\n%s\nexpected:\n%s", ts.SQL, want)
	}
	if strings.Contains(ts.SQL, "ENGINE") {
		t.Error("Expected table options stripped")
	}
	if !reflect.DeepEqual(ts.Columns, []string{"ID", "post_title"}) {
		t.Errorf("Unexpected columns: %v", ts.Columns)
	}
}

func TestTranslate_WordPressTable(t *testing.T) {
	create := "CREATE TABLE IF NOT EXISTS `wp_posts` (\n" +
		"  `ID` bigint(20) unsigned NOT NULL AUTO_INCREMENT,\n" +
		"  `post_title` text COLLATE utf8mb4_unicode_ci NOT NULL,\n" +
		"  `post_status` varchar(20) CHARACTER SET utf8mb4 NOT NULL DEFAULT 'publish' COMMENT 'state',\n" +
		"  `post_modified` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n" +
		"  `price` decimal(10,2) unsigned zerofill DEFAULT NULL,\n" +
		"  PRIMARY KEY (`ID`),\n" +
		"  KEY `post_name` (`post_name`(191)),\n" +
		"  UNIQUE KEY `u` (`post_title`(50),`ID`) USING BTREE,\n" +
		"  FULLTEXT KEY `ft` (`post_title`),\n" +
		"  CONSTRAINT `fk` FOREIGN KEY (`post_author`) REFERENCES `wp_users` (`ID`),\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=42 DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;;"

	ts := translate.Translate(create, "wp_posts", sqlite)
	want := "CREATE TABLE \"wp_posts\" (\n" +
		"  \"ID\" INTEGER NOT NULL,\n" +
		"  \"post_title\" TEXT NOT NULL,\n" +
		"  \"post_status\" TEXT NOT NULL DEFAULT 'publish',\n" +
		"  \"post_modified\" TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"  \"price\" REAL DEFAULT NULL,\n" +
		"  PRIMARY KEY (\"ID\")\n" +
		");"
	if ts.SQL != want {
		t.Errorf("Unexpected translation:\n%s\nexpected:\n%s", ts.SQL, want)
	}
	if len(ts.Columns) != 5 {
		t.Errorf("Expected 5 columns, got %v", ts.Columns)
	}
}

func TestTranslate_PrimaryKeyPrefixLength(t *testing.T) {
	ts := translate.Translate("CREATE TABLE t (name varchar(255), PRIMARY KEY (name(100)));", "t", sqlite)
	if !strings.Contains(ts.SQL, `PRIMARY KEY (name)`) {
		t.Errorf("Expected prefix length removed from primary key, got %s", ts.SQL)
	}
}

func TestTranslate_Quoting(t *testing.T) {
	create := "CREATE TABLE \"wp_posts\" (`ID` int, \"post_title\" text);"
	cases := []struct {
		d    dialect.Dialect
		want string
	}{
		{&dialect.MysqlDialect{}, "CREATE TABLE `wp_posts` (\n  `ID` BIGINT,\n  `post_title` LONGTEXT\n);"},
		{&dialect.PostgresDialect{}, "CREATE TABLE \"wp_posts\" (\n  \"ID\" BIGINT,\n  \"post_title\" TEXT\n);"},
		{&dialect.MSSQLDialect{}, "CREATE TABLE [wp_posts] (\n  [ID] BIGINT,\n  [post_title] NVARCHAR(MAX)\n);"},
	}
	for _, c := range cases {
		if got := translate.Translate(create, "wp_posts", c.d).SQL; got != c.want {
			t.Errorf("%s: got\n%s\nexpected\n%s", c.d.Name(), got, c.want)
		}
	}
}

func TestTranslate_RenamesToRequestedTable(t *testing.T) {
	ts := translate.Translate("CREATE TABLE blog.WP_POSTS (ID int);", "wp_posts", sqlite)
	if !strings.HasPrefix(ts.SQL, `CREATE TABLE "wp_posts" (`) {
		t.Errorf("Expected requested table name, got %s", ts.SQL)
	}
	if got := translate.Translate("CREATE TABLE WP_POSTS (ID int);", "", sqlite).Table; got != "WP_POSTS" {
		t.Errorf("Expected source table name, got %q", got)
	}
}

func TestTranslate_Unparseable(t *testing.T) {
	ts := translate.Translate("CREATE TABLE wp_posts (ID int, post_title text", "wp_posts", sqlite)
	if ts.SQL != "CREATE TABLE wp_posts (ID int, post_title text;" {
		t.Errorf("Expected statement passed through with a terminator, got %q", ts.SQL)
	}
	if ts.Columns != nil {
		t.Errorf("Expected no columns, got %v", ts.Columns)
	}
}

func TestTranslate_Empty(t *testing.T) {
	if !translate.Translate("  ", "wp_posts", sqlite).Empty() {
		t.Error("Expected empty schema")
	}
}

func TestMapType(t *testing.T) {
	cases := map[string]string{
		"TINYINT": "INTEGER", "mediumint": "INTEGER", "char": "TEXT", "longtext": "TEXT",
		"enum": "TEXT", "datetime": "TEXT", "year": "TEXT", "double": "REAL", "decimal": "REAL",
		"mediumblob": "BLOB",
	}
	for in, want := range cases {
		if got, ok := translate.MapType(in, sqlite); !ok || got != want {
			t.Errorf("MapType(%s) = %s, %t; expected %s", in, got, ok, want)
		}
	}
	if got, ok := translate.MapType("geometry", sqlite); ok || got != "geometry" {
		t.Errorf("Expected unknown type passed through, got %s, %t", got, ok)
	}
}

func TestTranslate_FractionalSecondDefaults(t *testing.T) {
	create := "CREATE TABLE `wp_posts` (`ID` bigint unsigned NOT NULL, " +
		"`post_date` datetime(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6), " +
		"`post_modified` datetime DEFAULT now() ON UPDATE now(), PRIMARY KEY (`ID`)) ENGINE=InnoDB;"
	want := "CREATE TABLE \"wp_posts\" (\n" +
		"  \"ID\" INTEGER NOT NULL,\n" +
		"  \"post_date\" TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"  \"post_modified\" TEXT DEFAULT CURRENT_TIMESTAMP,\n" +
		"  PRIMARY KEY (\"ID\")\n" +
		");"
	if got := translate.Translate(create, "wp_posts", sqlite).SQL; got != want {
		t.Errorf("Unexpected translation:\n%s\nexpected:\n%s", got, want)
	}
}
