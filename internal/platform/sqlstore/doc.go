// Package sqlstore implements the store interfaces on top of database/sql.
//
// Queries use $N placeholders, which both PostgreSQL (pgx) and SQLite
// (modernc.org/sqlite) bind by ordinal, so a single implementation serves
// both drivers. Driver errors are translated into store errors by MapError.
package sqlstore
