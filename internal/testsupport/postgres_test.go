package testsupport

import (
	"testing"
)

func TestPostgresTestHelper_TxRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestPostgres(t)
	defer testDB.Close()

	tx := testDB.Tx()

	if _, err := tx.Exec("CREATE TABLE IF NOT EXISTS integration_tx_check(id SERIAL PRIMARY KEY, value TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	if _, err := tx.Exec("INSERT INTO integration_tx_check(value) VALUES('hello world')"); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM integration_tx_check").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}

	if count != 1 {
		t.Fatalf("unexpected row count inside transaction: %d", count)
	}

	testDB.Rollback()

	var exists bool
	err := testDB.DB().QueryRow(
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'integration_tx_check')",
	).Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check table existence: %v", err)
	}

	if exists {
		t.Fatal("table should not exist after rollback")
	}
}
