package repos

import (
	"context"
	"testing"

	"github.com/yungbote/questpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/questpath-backend/internal/domain"
)

func TestGoalRepoGetWithLevels(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewGoalRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "goalrepo@example.com")
	g := testutil.SeedGoal(t, ctx, tx, u.ID)
	rm := testutil.SeedRoadmap(t, ctx, tx, g.ID)
	testutil.SeedLevels(t, ctx, tx, rm.ID, 3)

	loaded, err := repo.GetWithLevels(ctx, tx, g.ID, u.ID)
	if err != nil || loaded == nil {
		t.Fatalf("GetWithLevels: err=%v loaded=%v", err, loaded)
	}
	if loaded.Roadmap == nil || len(loaded.Roadmap.Levels) != 3 {
		t.Fatalf("aggregate incomplete: %+v", loaded.Roadmap)
	}
	for i, l := range loaded.Roadmap.Levels {
		if l.Order != i+1 {
			t.Fatalf("levels not ordered: position %d has order %d", i, l.Order)
		}
	}

	stranger := testutil.SeedUser(t, ctx, tx, "goalstranger@example.com")
	leaked, err := repo.GetWithLevels(ctx, tx, g.ID, stranger.ID)
	if err != nil || leaked != nil {
		t.Fatalf("GetWithLevels(stranger): err=%v leaked=%v", err, leaked)
	}
}

func TestGoalRepoListAndStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewGoalRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "goallist@example.com")
	g1 := testutil.SeedGoal(t, ctx, tx, u.ID)
	g2 := testutil.SeedGoal(t, ctx, tx, u.ID)

	goals, err := repo.ListByUserID(ctx, tx, u.ID)
	if err != nil || len(goals) != 2 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(goals))
	}

	if err := repo.UpdateStatus(ctx, tx, g1.ID, types.GoalInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	reloaded, err := repo.GetWithLevels(ctx, tx, g1.ID, u.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload: err=%v", err)
	}
	if reloaded.Status != types.GoalInProgress {
		t.Fatalf("status=%s, want in_progress", reloaded.Status)
	}
	_ = g2
}
