package services

import (
	"testing"

	"github.com/yungbote/questpath-backend/internal/apperr"
)

const validRoadmapJSON = `{
	"title": "Learn Go",
	"category": "Programming",
	"difficulty": "beginner",
	"roadmap": {
		"name": "Go from Zero",
		"levels": [
			{
				"order": 1,
				"title": "Basics",
				"description": "Syntax and types",
				"topics": [{"name": "Variables", "completed": false}, {"name": "Slices", "completed": false}],
				"xp_reward": 100
			},
			{
				"order": 2,
				"title": "Concurrency",
				"description": "Goroutines and channels",
				"topics": [{"name": "Goroutines", "completed": false}],
				"xp_reward": 150
			}
		]
	}
}`

func TestParseRoadmapDocument(t *testing.T) {
	doc, err := ParseRoadmapDocument([]byte(validRoadmapJSON))
	if err != nil {
		t.Fatalf("ParseRoadmapDocument: %v", err)
	}
	if doc.Title != "Learn Go" || doc.Difficulty != "beginner" {
		t.Fatalf("unexpected header fields: %+v", doc)
	}
	if len(doc.Roadmap.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(doc.Roadmap.Levels))
	}
	if doc.Roadmap.Levels[1].Order != 2 || doc.Roadmap.Levels[1].XPReward != 150 {
		t.Fatalf("level fields not carried over: %+v", doc.Roadmap.Levels[1])
	}
}

func TestParseRoadmapDocumentRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `roadmap time!`},
		{"missing title", `{"category": "x", "difficulty": "beginner", "roadmap": {"name": "r", "levels": [{"order": 1, "title": "t", "description": "d", "topics": [], "xp_reward": 100}]}}`},
		{"missing roadmap", `{"title": "t", "category": "x", "difficulty": "beginner"}`},
		{"missing levels key", `{"title": "t", "category": "x", "difficulty": "beginner", "roadmap": {"name": "r"}}`},
		{"empty levels", `{"title": "t", "category": "x", "difficulty": "beginner", "roadmap": {"name": "r", "levels": []}}`},
		{"bad difficulty", `{"title": "t", "category": "x", "difficulty": "expert", "roadmap": {"name": "r", "levels": [{"order": 1, "title": "t", "description": "d", "topics": [], "xp_reward": 100}]}}`},
		{"level missing xp_reward", `{"title": "t", "category": "x", "difficulty": "beginner", "roadmap": {"name": "r", "levels": [{"order": 1, "title": "t", "description": "d", "topics": []}]}}`},
		{"duplicate order", `{"title": "t", "category": "x", "difficulty": "beginner", "roadmap": {"name": "r", "levels": [{"order": 1, "title": "a", "description": "d", "topics": [], "xp_reward": 100}, {"order": 1, "title": "b", "description": "d", "topics": [], "xp_reward": 100}]}}`},
		{"order gap", `{"title": "t", "category": "x", "difficulty": "beginner", "roadmap": {"name": "r", "levels": [{"order": 1, "title": "a", "description": "d", "topics": [], "xp_reward": 100}, {"order": 3, "title": "b", "description": "d", "topics": [], "xp_reward": 100}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRoadmapDocument([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !apperr.IsCode(err, apperr.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

const validQuizJSON = `{
	"questions": [
		{
			"id": 1,
			"question": "What declares a variable?",
			"options": [
				{"text": "var", "value": "A"},
				{"text": "let", "value": "B"},
				{"text": "def", "value": "C"},
				{"text": "dim", "value": "D"}
			],
			"correct_answer": "A"
		}
	]
}`

func TestParseQuizDocument(t *testing.T) {
	doc, err := ParseQuizDocument([]byte(validQuizJSON))
	if err != nil {
		t.Fatalf("ParseQuizDocument: %v", err)
	}
	if len(doc.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(doc.Questions))
	}
	q := doc.Questions[0]
	if q.CorrectAnswer != "A" || len(q.Options) != 4 {
		t.Fatalf("question fields not carried over: %+v", q)
	}
}

func TestParseQuizDocumentRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing questions key", `{"quiz": []}`},
		{"empty questions", `{"questions": []}`},
		{"three options", `{"questions": [{"id": 1, "question": "q?", "options": [{"text": "a", "value": "A"}, {"text": "b", "value": "B"}, {"text": "c", "value": "C"}], "correct_answer": "A"}]}`},
		{"answer outside labels", `{"questions": [{"id": 1, "question": "q?", "options": [{"text": "a", "value": "A"}, {"text": "b", "value": "B"}, {"text": "c", "value": "C"}, {"text": "d", "value": "D"}], "correct_answer": "E"}]}`},
		{"answer label not offered", `{"questions": [{"id": 1, "question": "q?", "options": [{"text": "a", "value": "A"}, {"text": "b", "value": "B"}, {"text": "c", "value": "C"}, {"text": "d", "value": "C"}], "correct_answer": "D"}]}`},
		{"missing correct_answer", `{"questions": [{"id": 1, "question": "q?", "options": [{"text": "a", "value": "A"}, {"text": "b", "value": "B"}, {"text": "c", "value": "C"}, {"text": "d", "value": "D"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuizDocument([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !apperr.IsCode(err, apperr.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
