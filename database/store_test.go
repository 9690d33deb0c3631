package database

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *NetworkStore {
	t.Helper()
	db, err := InitDatabase(t.TempDir())
	if err != nil {
		t.Fatalf("InitDatabase() err=%v", err)
	}
	t.Cleanup(func() { db.DB.Close() })
	return NewNetworkStore(db)
}

func TestLoadCurrentEmpty(t *testing.T) {
	store := newTestStore(t)
	_, ok, err := store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() err=%v", err)
	}
	if ok {
		t.Fatalf("expected no persisted network in a fresh store")
	}
}

func TestSaveAndLoadCurrent(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveCurrent("devnet"); err != nil {
		t.Fatalf("SaveCurrent() err=%v", err)
	}

	id, ok, err := store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() err=%v", err)
	}
	if !ok || id != "devnet" {
		t.Fatalf("LoadCurrent()=%q ok=%v, want devnet", id, ok)
	}

	if err := store.SaveCurrent("localhost"); err != nil {
		t.Fatalf("SaveCurrent() err=%v", err)
	}
	id, _, err = store.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent() err=%v", err)
	}
	if id != "localhost" {
		t.Fatalf("LoadCurrent()=%q, want latest saved value", id)
	}
}

func TestSwitchTrailNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	recs := []SwitchRecord{
		{From: "devnet", To: "localhost", Succeeded: false, Error: "connection refused", At: base},
		{From: "devnet", To: "localhost", Succeeded: true, At: base.Add(time.Second)},
		{From: "localhost", To: "mainnet", Succeeded: true, At: base.Add(2 * time.Second)},
	}
	for _, rec := range recs {
		if err := store.AppendSwitch(rec); err != nil {
			t.Fatalf("AppendSwitch() err=%v", err)
		}
	}

	got, err := store.ListSwitches(0)
	if err != nil {
		t.Fatalf("ListSwitches() err=%v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].To != "mainnet" || got[2].To != "localhost" {
		t.Fatalf("records not in newest-first order: %+v", got)
	}
	if got[2].Error == "" || got[2].Succeeded {
		t.Fatalf("oldest record must be the failed attempt: %+v", got[2])
	}

	limited, err := store.ListSwitches(2)
	if err != nil {
		t.Fatalf("ListSwitches(2) err=%v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(limited))
	}
	if limited[0].To != "mainnet" {
		t.Fatalf("limit must keep newest records first: %+v", limited)
	}
}

func TestNetworkStoreKeysDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveCurrent("devnet"); err != nil {
		t.Fatalf("SaveCurrent() err=%v", err)
	}
	if err := store.AppendSwitch(SwitchRecord{From: "devnet", To: "localhost", Succeeded: true, At: time.Now()}); err != nil {
		t.Fatalf("AppendSwitch() err=%v", err)
	}

	id, ok, err := store.LoadCurrent()
	if err != nil || !ok || id != "devnet" {
		t.Fatalf("LoadCurrent()=%q ok=%v err=%v, want devnet", id, ok, err)
	}
	recs, err := store.ListSwitches(0)
	if err != nil {
		t.Fatalf("ListSwitches() err=%v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 switch record, got %d", len(recs))
	}
}
