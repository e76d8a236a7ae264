package services

import (
	"context"
	"testing"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	"github.com/yungbote/questpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/observability"
	"gorm.io/gorm"
)

type stubQuizGen struct {
	doc *types.QuizDocument
	err error
}

func (s *stubQuizGen) Generate(context.Context, string, []string) (*types.QuizDocument, error) {
	return s.doc, s.err
}

func quizDoc() *types.QuizDocument {
	return &types.QuizDocument{Questions: []types.QuizQuestion{
		{
			ID:       1,
			Question: "What keyword starts a goroutine?",
			Options: []types.QuizOption{
				{Text: "go", Value: "A"},
				{Text: "run", Value: "B"},
				{Text: "async", Value: "C"},
				{Text: "spawn", Value: "D"},
			},
			CorrectAnswer: "A",
		},
	}}
}

type progressionHarness struct {
	tx        *gorm.DB
	svc       ProgressionService
	userRepo  repos.UserRepo
	levelRepo repos.LevelRepo
	goalRepo  repos.GoalRepo
	cache     *memCache
	user      *types.User
	goal      *types.Goal
	levels    []*types.Level
}

func newProgressionHarness(t *testing.T, levelCount int) *progressionHarness {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "progress@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, user.ID)
	roadmap := testutil.SeedRoadmap(t, ctx, tx, goal.ID)
	levels := testutil.SeedLevels(t, ctx, tx, roadmap.ID, levelCount)

	userRepo := repos.NewUserRepo(tx, log)
	goalRepo := repos.NewGoalRepo(tx, log)
	roadmapRepo := repos.NewRoadmapRepo(tx, log)
	levelRepo := repos.NewLevelRepo(tx, log)
	cache := newMemCache()
	svc := NewProgressionService(tx, log, userRepo, goalRepo, roadmapRepo, levelRepo,
		&stubQuizGen{doc: quizDoc()}, cache, observability.NewCollector())

	return &progressionHarness{
		tx:        tx,
		svc:       svc,
		userRepo:  userRepo,
		levelRepo: levelRepo,
		goalRepo:  goalRepo,
		cache:     cache,
		user:      user,
		goal:      goal,
		levels:    levels,
	}
}

func (h *progressionHarness) completeTopics(t *testing.T, level *types.Level) {
	t.Helper()
	topics := make([]types.Topic, len(level.Topics))
	copy(topics, level.Topics)
	for i := range topics {
		topics[i].Completed = true
	}
	if err := h.levelRepo.UpdateTopics(context.Background(), nil, level.ID, topics); err != nil {
		t.Fatalf("complete topics: %v", err)
	}
}

func TestToggleTopicFlipsAndPersists(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 1)
	level := h.levels[0]

	updated, err := h.svc.ToggleTopic(ctx, h.user.ID, level.ID, 0)
	if err != nil {
		t.Fatalf("ToggleTopic: %v", err)
	}
	if !updated.Topics[0].Completed {
		t.Fatal("topic 0 not flipped on")
	}

	stored, err := h.levelRepo.GetOwned(ctx, nil, level.ID, h.user.ID)
	if err != nil {
		t.Fatalf("reload level: %v", err)
	}
	if !stored.Topics[0].Completed || stored.Topics[1].Completed {
		t.Fatalf("persisted topics wrong: %+v", stored.Topics)
	}

	// Toggling again flips it back off.
	updated, err = h.svc.ToggleTopic(ctx, h.user.ID, level.ID, 0)
	if err != nil {
		t.Fatalf("ToggleTopic: %v", err)
	}
	if updated.Topics[0].Completed {
		t.Fatal("topic 0 not flipped back off")
	}
}

func TestToggleTopicRejectsBadIndex(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 1)

	if _, err := h.svc.ToggleTopic(ctx, h.user.ID, h.levels[0].ID, 5); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("out-of-range index: got %v, want validation", err)
	}
	if _, err := h.svc.ToggleTopic(ctx, h.user.ID, h.levels[0].ID, -1); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("negative index: got %v, want validation", err)
	}
}

func TestToggleTopicForeignLevelIsNotFound(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 1)
	stranger := testutil.SeedUser(t, ctx, h.tx, "stranger@example.com")

	if _, err := h.svc.ToggleTopic(ctx, stranger.ID, h.levels[0].ID, 0); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("foreign level: got %v, want not_found", err)
	}
}

func TestGetQuizGatedOnTopics(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 1)
	level := h.levels[0]

	if _, err := h.svc.GetQuiz(ctx, h.user.ID, level.ID); !apperr.IsCode(err, apperr.CodePermissionDenied) {
		t.Fatalf("incomplete topics: got %v, want permission_denied", err)
	}

	h.completeTopics(t, level)
	quiz, err := h.svc.GetQuiz(ctx, h.user.ID, level.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if quiz.LevelID != level.ID || quiz.TimeLimit != 300 {
		t.Fatalf("unexpected quiz envelope: %+v", quiz)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz.Questions))
	}
}

func TestSubmitQuizFailMutatesNothing(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 2)

	result, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Score: 40, Passed: false})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if result.Passed || result.XPEarned != 0 || result.NextLevelUnlocked {
		t.Fatalf("fail result mutated state: %+v", result)
	}
	if result.Message == "" {
		t.Fatal("expected an encouragement message")
	}

	user, err := h.userRepo.GetByID(ctx, nil, h.user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.TotalExp != 0 {
		t.Fatalf("failed quiz awarded %d XP", user.TotalExp)
	}
	second, err := h.levelRepo.GetOwned(ctx, nil, h.levels[1].ID, h.user.ID)
	if err != nil {
		t.Fatalf("reload level 2: %v", err)
	}
	if second.Status != types.LevelLocked {
		t.Fatalf("failed quiz unlocked level 2: %s", second.Status)
	}
}

func TestSubmitQuizPassAwardsAndUnlocks(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 2)

	result, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Score: 90, Passed: true, TimeTaken: 120})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if !result.Passed || result.XPEarned != 100 || !result.NextLevelUnlocked {
		t.Fatalf("unexpected pass result: %+v", result)
	}

	user, _ := h.userRepo.GetByID(ctx, nil, h.user.ID)
	if user.TotalExp != 100 {
		t.Fatalf("total_exp=%d, want 100", user.TotalExp)
	}
	first, _ := h.levelRepo.GetOwned(ctx, nil, h.levels[0].ID, h.user.ID)
	if first.Status != types.LevelCompleted {
		t.Fatalf("level 1 status=%s, want completed", first.Status)
	}
	second, _ := h.levelRepo.GetOwned(ctx, nil, h.levels[1].ID, h.user.ID)
	if second.Status != types.LevelUnlocked {
		t.Fatalf("level 2 status=%s, want unlocked", second.Status)
	}
	goal, _ := h.goalRepo.GetWithLevels(ctx, nil, h.goal.ID, h.user.ID)
	if goal.Status != types.GoalInProgress {
		t.Fatalf("goal status=%s, want in_progress", goal.Status)
	}
}

func TestSubmitQuizRepeatPassAwardsNothing(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 2)

	if _, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Passed: true}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	result, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Passed: true})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.XPEarned != 0 {
		t.Fatalf("repeat pass earned %d XP, want 0", result.XPEarned)
	}

	user, _ := h.userRepo.GetByID(ctx, nil, h.user.ID)
	if user.TotalExp != 100 {
		t.Fatalf("total_exp=%d after repeat, want 100", user.TotalExp)
	}
}

func TestSubmitQuizLastLevelCompletesGoal(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 2)

	if _, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Passed: true}); err != nil {
		t.Fatalf("level 1 submit: %v", err)
	}
	result, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[1].ID, types.QuizSubmission{Passed: true})
	if err != nil {
		t.Fatalf("level 2 submit: %v", err)
	}
	if result.NextLevelUnlocked {
		t.Fatal("last level reported an unlock")
	}

	goal, _ := h.goalRepo.GetWithLevels(ctx, nil, h.goal.ID, h.user.ID)
	if goal.Status != types.GoalCompleted {
		t.Fatalf("goal status=%s, want completed", goal.Status)
	}
	user, _ := h.userRepo.GetByID(ctx, nil, h.user.ID)
	if user.TotalExp != 200 {
		t.Fatalf("total_exp=%d, want 200", user.TotalExp)
	}
}

func TestSubmitQuizInvalidatesLeaderboardCache(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 1)
	if err := h.cache.Set(ctx, leaderboardCacheKey, "[]", leaderboardCacheTTL); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if _, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Passed: true}); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if _, found, _ := h.cache.Get(ctx, leaderboardCacheKey); found {
		t.Fatal("leaderboard cache not invalidated after XP award")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	h := newProgressionHarness(t, 4)

	if _, err := h.svc.SubmitQuiz(ctx, h.user.ID, h.levels[0].ID, types.QuizSubmission{Passed: true}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := h.svc.Stats(ctx, h.user.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalExp != 100 {
		t.Fatalf("total_exp=%d, want 100", stats.TotalExp)
	}
	if stats.LevelsCompleted != 1 {
		t.Fatalf("levels_completed=%d, want 1", stats.LevelsCompleted)
	}
	if stats.GoalCompletionPercentage != 25 {
		t.Fatalf("goal_completion_percentage=%d, want 25", stats.GoalCompletionPercentage)
	}
}
