package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	"github.com/yungbote/questpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/observability"
)

type stubRoadmapGen struct {
	doc   *types.RoadmapDocument
	err   error
	calls int
}

func (s *stubRoadmapGen) Generate(context.Context, string) (*types.RoadmapDocument, error) {
	s.calls++
	return s.doc, s.err
}

func roadmapDoc() *types.RoadmapDocument {
	return &types.RoadmapDocument{
		Title:      "Learn Go",
		Category:   "Programming",
		Difficulty: "beginner",
		Roadmap: types.RoadmapPlan{
			Name: "Go from Zero",
			Levels: []types.LevelPlan{
				{
					Order:       1,
					Title:       "Basics",
					Description: "Syntax and types",
					Topics:      []types.Topic{{Name: "Variables"}, {Name: "Slices"}},
					XPReward:    100,
				},
				{
					Order:       2,
					Title:       "Concurrency",
					Description: "Goroutines and channels",
					Topics:      []types.Topic{{Name: "Goroutines"}},
					XPReward:    150,
				},
			},
		},
	}
}

func newGoalService(t *testing.T, gen *stubRoadmapGen, cache *memCache) (GoalService, *types.User) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "goals@example.com")
	svc := NewGoalService(tx, log,
		repos.NewGoalRepo(tx, log),
		repos.NewRoadmapRepo(tx, log),
		repos.NewLevelRepo(tx, log),
		gen,
		NewRateLimitService(log, cache),
		observability.NewCollector(),
	)
	return svc, user
}

func TestCreateGoalPersistsAggregate(t *testing.T) {
	ctx := context.Background()
	svc, user := newGoalService(t, &stubRoadmapGen{doc: roadmapDoc()}, newMemCache())

	goal, err := svc.CreateGoal(ctx, user.ID, "I want to learn Go for backend work")
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Title != "Learn Go" || goal.DifficultyLevel != types.DifficultyBeginner {
		t.Fatalf("goal header wrong: %+v", goal)
	}
	if goal.Status != types.GoalNotStarted {
		t.Fatalf("new goal status=%s, want not_started", goal.Status)
	}
	if goal.Roadmap == nil || len(goal.Roadmap.Levels) != 2 {
		t.Fatalf("roadmap not loaded with levels: %+v", goal.Roadmap)
	}
	first, second := goal.Roadmap.Levels[0], goal.Roadmap.Levels[1]
	if first.Order != 1 || first.Status != types.LevelUnlocked {
		t.Fatalf("level 1 should start unlocked: %+v", first)
	}
	if second.Order != 2 || second.Status != types.LevelLocked {
		t.Fatalf("level 2 should start locked: %+v", second)
	}
	if len(first.Topics) != 2 || first.Topics[0].Name != "Variables" {
		t.Fatalf("level 1 topics wrong: %+v", first.Topics)
	}
}

func TestCreateGoalValidatesDescription(t *testing.T) {
	ctx := context.Background()
	gen := &stubRoadmapGen{doc: roadmapDoc()}
	svc, user := newGoalService(t, gen, newMemCache())

	if _, err := svc.CreateGoal(ctx, user.ID, "too short"); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("short description: got %v, want validation", err)
	}
	if _, err := svc.CreateGoal(ctx, user.ID, strings.Repeat("x", 501)); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("long description: got %v, want validation", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times for invalid input", gen.calls)
	}
}

func TestCreateGoalRateLimited(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	gen := &stubRoadmapGen{doc: roadmapDoc()}
	svc, user := newGoalService(t, gen, cache)

	key := fmt.Sprintf("rate_limit:user:%d:create_goal", user.ID)
	if err := cache.Set(ctx, key, "5", createGoalWindow); err != nil {
		t.Fatalf("seed limiter: %v", err)
	}

	_, err := svc.CreateGoal(ctx, user.ID, "I want to learn Go for backend work")
	if !apperr.IsCode(err, apperr.CodeRateLimited) {
		t.Fatalf("got %v, want rate_limited", err)
	}
	if gen.calls != 0 {
		t.Fatal("generator called for a rate limited request")
	}
}

func TestCreateGoalGeneratorFailure(t *testing.T) {
	ctx := context.Background()
	gen := &stubRoadmapGen{err: apperr.GeneratorUnavailable(errors.New("upstream 503"))}
	svc, user := newGoalService(t, gen, newMemCache())

	if _, err := svc.CreateGoal(ctx, user.ID, "I want to learn Go for backend work"); !apperr.IsCode(err, apperr.CodeGeneratorUnavailable) {
		t.Fatalf("got %v, want generator_unavailable", err)
	}

	goals, err := svc.ListGoals(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("failed generation persisted %d goals", len(goals))
	}
}

func TestGetGoalForeignOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, "stranger2@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)

	svc := NewGoalService(tx, log,
		repos.NewGoalRepo(tx, log),
		repos.NewRoadmapRepo(tx, log),
		repos.NewLevelRepo(tx, log),
		&stubRoadmapGen{doc: roadmapDoc()},
		NewRateLimitService(log, newMemCache()),
		observability.NewCollector(),
	)

	if _, err := svc.GetGoal(ctx, stranger.ID, goal.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("foreign goal: got %v, want not_found", err)
	}
}
