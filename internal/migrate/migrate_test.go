package migrate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadSortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/0002_second.sql": {Data: []byte("SELECT 2;")},
		"sql/0001_first.sql":  {Data: []byte("SELECT 1;")},
		"sql/readme.txt":      {Data: []byte("ignored")},
	}
	got, err := load(fsys)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if len(got) != 2 || got[0].Version != "0001_first" || got[1].Version != "0002_second" {
		t.Fatalf("unexpected migrations: %+v", got)
	}
}

func TestEmbeddedSchema(t *testing.T) {
	got, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected embedded migrations")
	}
	for _, table := range []string{"campaigns", "disbursements", "withdrawal_transactions", "audit_logs"} {
		if !strings.Contains(got[0].SQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("initial schema missing %s", table)
		}
	}
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: "0001"}, {Version: "0002"}, {Version: "0003"}}
	got := Pending(all, map[string]bool{"0001": true, "0003": true})
	if len(got) != 1 || got[0].Version != "0002" {
		t.Fatalf("Pending() = %+v", got)
	}
}
