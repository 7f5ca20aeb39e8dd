package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/entitygen/internal/adapters/sqlite"
	"github.com/example/entitygen/internal/ports/secondary"
)

func TestHistoryRepository_CreateRun(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	t.Run("creates run with all fields", func(t *testing.T) {
		record := &secondary.RunRecord{
			ID:          "RUN-01J",
			Entity:      "Customer",
			PackageName: "com.acme.entity",
			Pattern:     "ddd",
			Policy:      "confirm",
			DryRun:      true,
		}

		if err := repo.CreateRun(ctx, record); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}

		got, err := repo.GetRun(ctx, "RUN-01J")
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}

		if got.Entity != "Customer" {
			t.Errorf("Entity = %q, want %q", got.Entity, "Customer")
		}
		if got.PackageName != "com.acme.entity" {
			t.Errorf("PackageName = %q, want %q", got.PackageName, "com.acme.entity")
		}
		if got.Pattern != "ddd" {
			t.Errorf("Pattern = %q, want %q", got.Pattern, "ddd")
		}
		if got.Policy != "confirm" {
			t.Errorf("Policy = %q, want %q", got.Policy, "confirm")
		}
		if !got.DryRun {
			t.Error("expected DryRun to be true")
		}
		if got.Status != "running" {
			t.Errorf("Status = %q, want %q", got.Status, "running")
		}
		if got.CreatedAt == "" {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("defaults optional fields", func(t *testing.T) {
		if err := repo.CreateRun(ctx, &secondary.RunRecord{ID: "RUN-02", Entity: "Order", PackageName: "com.acme"}); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}

		got, err := repo.GetRun(ctx, "RUN-02")
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}
		if got.Pattern != "" || got.Error != "" {
			t.Errorf("expected empty pattern and error, got %q / %q", got.Pattern, got.Error)
		}
		if got.Policy != "silent" {
			t.Errorf("Policy = %q, want %q", got.Policy, "silent")
		}
	})

	t.Run("rejects duplicate ID", func(t *testing.T) {
		err := repo.CreateRun(ctx, &secondary.RunRecord{ID: "RUN-02", Entity: "Order", PackageName: "com.acme"})
		if err == nil {
			t.Error("expected error for duplicate run ID")
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		err := repo.CreateRun(ctx, &secondary.RunRecord{ID: "RUN-03", Entity: "Order", PackageName: "com.acme", Status: "paused"})
		if err == nil {
			t.Error("expected error for unknown status")
		}
	})
}

func TestHistoryRepository_GetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)

	if _, err := repo.GetRun(context.Background(), "RUN-404"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestHistoryRepository_UpdateRunStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()
	seedRun(t, db, "RUN-001", "Customer", "running")

	if err := repo.UpdateRunStatus(ctx, "RUN-001", "failed", "cannot find source directory"); err != nil {
		t.Fatalf("UpdateRunStatus failed: %v", err)
	}

	got, err := repo.GetRun(ctx, "RUN-001")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Status != "failed" {
		t.Errorf("Status = %q, want %q", got.Status, "failed")
	}
	if got.Error != "cannot find source directory" {
		t.Errorf("Error = %q", got.Error)
	}

	if err := repo.UpdateRunStatus(ctx, "RUN-404", "failed", ""); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestHistoryRepository_Artifacts(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()
	seedRun(t, db, "RUN-001", "", "")

	artifacts := []*secondary.ArtifactRecord{
		{RunID: "RUN-001", Kind: "repository", ClassName: "CustomerRepository", Path: "src/main/java/com/acme/repository/CustomerRepository.java", Outcome: "skipped", Position: 1},
		{RunID: "RUN-001", Kind: "dto", ClassName: "CustomerDto", Path: "src/main/java/com/acme/dto/CustomerDto.java", Outcome: "created", Position: 0},
	}
	for _, a := range artifacts {
		if err := repo.AddArtifact(ctx, a); err != nil {
			t.Fatalf("AddArtifact failed: %v", err)
		}
		if a.ID == 0 {
			t.Error("expected ID to be assigned")
		}
	}

	got, err := repo.ListArtifacts(ctx, "RUN-001")
	if err != nil {
		t.Fatalf("ListArtifacts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(got))
	}
	if got[0].Kind != "dto" || got[1].Kind != "repository" {
		t.Errorf("expected placement order dto, repository; got %s, %s", got[0].Kind, got[1].Kind)
	}

	// Artifacts must belong to an existing run
	err = repo.AddArtifact(ctx, &secondary.ArtifactRecord{RunID: "RUN-404", Kind: "dto", ClassName: "X", Path: "x", Outcome: "created"})
	if err == nil {
		t.Error("expected error for artifact of missing run")
	}
}

func TestHistoryRepository_ListRuns(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-001", "Customer", "succeeded")
	seedRun(t, db, "RUN-002", "Order", "failed")
	seedRun(t, db, "RUN-003", "Customer", "succeeded")
	ageRun(t, db, "RUN-001", 2)
	ageRun(t, db, "RUN-002", 1)

	tests := []struct {
		name    string
		filters secondary.RunFilters
		wantIDs []string
	}{
		{"all newest first", secondary.RunFilters{}, []string{"RUN-003", "RUN-002", "RUN-001"}},
		{"by entity", secondary.RunFilters{Entity: "Customer"}, []string{"RUN-003", "RUN-001"}},
		{"by status", secondary.RunFilters{Status: "failed"}, []string{"RUN-002"}},
		{"limit", secondary.RunFilters{Limit: 2}, []string{"RUN-003", "RUN-002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.ListRuns(ctx, tt.filters)
			if err != nil {
				t.Fatalf("ListRuns failed: %v", err)
			}
			if len(runs) != len(tt.wantIDs) {
				t.Fatalf("expected %d runs, got %d", len(tt.wantIDs), len(runs))
			}
			for i, id := range tt.wantIDs {
				if runs[i].ID != id {
					t.Errorf("runs[%d].ID = %s, want %s", i, runs[i].ID, id)
				}
			}
		})
	}
}

func TestHistoryRepository_PruneRuns(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-OLD", "", "")
	seedRun(t, db, "RUN-NEW", "", "")
	ageRun(t, db, "RUN-OLD", 40)
	if err := repo.AddArtifact(ctx, &secondary.ArtifactRecord{RunID: "RUN-OLD", Kind: "dto", ClassName: "CustomerDto", Path: "x", Outcome: "created"}); err != nil {
		t.Fatalf("AddArtifact failed: %v", err)
	}

	n, err := repo.PruneRuns(ctx, 30)
	if err != nil {
		t.Fatalf("PruneRuns failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d runs, want 1", n)
	}

	if _, err := repo.GetRun(ctx, "RUN-OLD"); err == nil {
		t.Error("expected old run to be pruned")
	}
	if _, err := repo.GetRun(ctx, "RUN-NEW"); err != nil {
		t.Errorf("expected new run to remain: %v", err)
	}

	artifacts, err := repo.ListArtifacts(ctx, "RUN-OLD")
	if err != nil {
		t.Fatalf("ListArtifacts failed: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("expected artifacts of pruned run to be removed, got %d", len(artifacts))
	}
}
