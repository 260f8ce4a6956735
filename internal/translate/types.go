package translate

import (
	"strings"

	"dump-salvage/internal/dialect"
)

type family int

const (
	familyInteger family = iota
	familyText
	familyTimestamp
	familyReal
	familyBlob
)

// sourceTypes covers the MySQL column type vocabulary.
var sourceTypes = map[string]family{
	"tinyint": familyInteger, "smallint": familyInteger, "mediumint": familyInteger,
	"int": familyInteger, "integer": familyInteger, "bigint": familyInteger,
	"bit": familyInteger, "bool": familyInteger, "boolean": familyInteger, "serial": familyInteger,

	"char": familyText, "varchar": familyText, "nchar": familyText, "nvarchar": familyText,
	"tinytext": familyText, "text": familyText, "mediumtext": familyText, "longtext": familyText,
	"enum": familyText, "set": familyText, "json": familyText,

	"datetime": familyTimestamp, "timestamp": familyTimestamp, "date": familyTimestamp,
	"time": familyTimestamp, "year": familyTimestamp,

	"float": familyReal, "double": familyReal, "real": familyReal,
	"decimal": familyReal, "numeric": familyReal, "dec": familyReal, "fixed": familyReal,

	"binary": familyBlob, "varbinary": familyBlob, "tinyblob": familyBlob, "blob": familyBlob,
	"mediumblob": familyBlob, "longblob": familyBlob,
}

// MapType returns the target spelling of a MySQL type name. ok is false for
// types outside the known vocabulary, which callers pass through unchanged.
func MapType(sourceType string, d dialect.Dialect) (string, bool) {
	f, ok := sourceTypes[strings.ToLower(sourceType)]
	if !ok {
		return sourceType, false
	}
	switch f {
	case familyInteger:
		return d.TypeInteger(), true
	case familyTimestamp:
		return d.TypeTimestamp(), true
	case familyReal:
		return d.TypeReal(), true
	case familyBlob:
		return d.TypeBlob(), true
	default:
		return d.TypeText(), true
	}
}
