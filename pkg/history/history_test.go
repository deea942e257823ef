package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndList(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	runs := []Run{
		{Source: "dpl", Status: "imported", EntityCount: 42, LastModified: "Tue, 02 Jan 2024 03:04:05 GMT"},
		{Source: "sdn", Status: "unchanged"},
		{Source: "el", Status: "failed"},
	}
	for _, r := range runs {
		if err := db.RecordRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.Runs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}
	for _, r := range got {
		if r.RanAt.IsZero() {
			t.Fatal("ran_at not recorded")
		}
	}

	limited, err := db.Runs(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: got %d runs", len(limited))
	}
}

func TestRecordRunKeepsExplicitTime(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	ranAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := db.RecordRun(ctx, Run{Source: "dpl", Status: "imported", RanAt: ranAt}); err != nil {
		t.Fatal(err)
	}

	got, err := db.Runs(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !got[0].RanAt.Equal(ranAt) {
		t.Fatalf("ran_at = %v, want %v", got[0].RanAt, ranAt)
	}
}
