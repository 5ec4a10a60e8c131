// Package db carries the schema migrations compiled into the binary so that
// the service can migrate any database it is pointed at, with no files on
// disk next to it.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
