// Package testdb provides database fixtures for tests.
//
// Open returns a fresh, fully migrated in-memory SQLite database per test, so
// tests exercise real foreign keys and cascades without external services.
// OpenPostgres does the same against the database named by
// FLASHCARDS_TEST_DATABASE_URL and skips the test when it is unset.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    ownerID := testdb.MustInsertUser(context.Background(), t, db, "alice")
//	    ...
//	}
package testdb
