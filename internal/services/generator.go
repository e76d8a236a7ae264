package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/clients/openai"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

// RoadmapGenerator turns a free-text learning goal into a validated
// roadmap document. Malformed model output is a Validation error and is
// never retried; transport failures surface as GeneratorUnavailable.
type RoadmapGenerator interface {
	Generate(ctx context.Context, goalDescription string) (*types.RoadmapDocument, error)
}

// QuizGenerator produces a validated multiple-choice question set for a
// level's topic list.
type QuizGenerator interface {
	Generate(ctx context.Context, levelTitle string, topicNames []string) (*types.QuizDocument, error)
}

const roadmapSystemPrompt = "You are a learning path expert. Always respond with valid JSON only."

const roadmapPromptTemplate = `You are an expert learning path designer. A user wants to achieve this goal:

%q

Generate a structured learning roadmap in JSON format. Follow these rules:
1. Create a clear, concise title for the goal
2. Determine the category (e.g., Programming, Language, Business, Health, Art, etc.)
3. Assess difficulty level: "beginner", "intermediate", or "advanced"
4. Design an appropriate number of levels (typically 3-8 depending on complexity)
5. Each level should have 3-7 key topics to learn
6. Each topic should be an object with "name" and "completed" fields (all start as false)
7. Assign XP rewards (100-300 based on difficulty)
8. Number levels with "order" starting at 1 with no gaps

Return ONLY valid JSON in this exact structure:
{
    "title": "Clean, professional goal title",
    "category": "Main category",
    "difficulty": "beginner|intermediate|advanced",
    "roadmap": {
        "name": "Descriptive roadmap name",
        "levels": [
            {
                "order": 1,
                "title": "Level title",
                "description": "What the user will learn in this level",
                "topics": [
                    {"name": "Topic name 1", "completed": false},
                    {"name": "Topic name 2", "completed": false}
                ],
                "xp_reward": 100
            }
        ]
    }
}

Make it practical, actionable, and motivating. NO markdown, NO code blocks, NO explanations, ONLY the JSON object.`

const quizSystemPrompt = "You are a quiz generation expert. Always respond with valid JSON only."

const quizPromptTemplate = `You are an expert quiz creator. Create a quiz for students learning about: %s

Topics covered:
%s

Generate 5 multiple choice questions to test understanding. Follow these rules:
1. Questions should cover the main topics listed above
2. Each question must have exactly 4 options (A, B, C, D)
3. Only ONE option is correct per question
4. Questions should range from basic recall to application
5. Make questions clear and unambiguous
6. Avoid trick questions

Return ONLY valid JSON in this exact structure:
{
    "questions": [
        {
            "id": 1,
            "question": "Clear question text?",
            "options": [
                {"text": "First option", "value": "A"},
                {"text": "Second option", "value": "B"},
                {"text": "Third option", "value": "C"},
                {"text": "Fourth option", "value": "D"}
            ],
            "correct_answer": "A"
        }
    ]
}

NO markdown, NO code blocks, NO explanations, ONLY the JSON object.`

type roadmapGenerator struct {
	log    *logger.Logger
	client openai.Client
}

func NewRoadmapGenerator(log *logger.Logger, client openai.Client) RoadmapGenerator {
	serviceLog := log.With("service", "RoadmapGenerator")
	return &roadmapGenerator{log: serviceLog, client: client}
}

func (g *roadmapGenerator) Generate(ctx context.Context, goalDescription string) (*types.RoadmapDocument, error) {
	prompt := fmt.Sprintf(roadmapPromptTemplate, goalDescription)
	raw, err := g.client.GenerateJSON(ctx, roadmapSystemPrompt, prompt)
	if err != nil {
		g.log.Error("Roadmap generation call failed", "error", err)
		return nil, apperr.GeneratorUnavailable(err)
	}
	doc, err := ParseRoadmapDocument(raw)
	if err != nil {
		g.log.Error("Invalid roadmap document from generator", "error", err)
		return nil, err
	}
	return doc, nil
}

type quizGenerator struct {
	log    *logger.Logger
	client openai.Client
}

func NewQuizGenerator(log *logger.Logger, client openai.Client) QuizGenerator {
	serviceLog := log.With("service", "QuizGenerator")
	return &quizGenerator{log: serviceLog, client: client}
}

func (g *quizGenerator) Generate(ctx context.Context, levelTitle string, topicNames []string) (*types.QuizDocument, error) {
	prompt := fmt.Sprintf(quizPromptTemplate, levelTitle, strings.Join(topicNames, ", "))
	raw, err := g.client.GenerateJSON(ctx, quizSystemPrompt, prompt)
	if err != nil {
		g.log.Error("Quiz generation call failed", "error", err)
		return nil, apperr.GeneratorUnavailable(err)
	}
	doc, err := ParseQuizDocument(raw)
	if err != nil {
		g.log.Error("Invalid quiz document from generator", "error", err)
		return nil, err
	}
	return doc, nil
}

var quizAnswerLabels = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// ParseRoadmapDocument parses and validates a raw roadmap document.
// Any missing field, wrong type, or structural violation is a Validation
// error; nothing is persisted from an invalid document.
func ParseRoadmapDocument(raw []byte) (*types.RoadmapDocument, error) {
	var probe struct {
		Title      *string `json:"title"`
		Category   *string `json:"category"`
		Difficulty *string `json:"difficulty"`
		Roadmap    *struct {
			Name   *string `json:"name"`
			Levels []struct {
				Order       *int           `json:"order"`
				Title       *string        `json:"title"`
				Description *string        `json:"description"`
				Topics      *[]types.Topic `json:"topics"`
				XPReward    *int           `json:"xp_reward"`
			} `json:"levels"`
		} `json:"roadmap"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "generator returned invalid JSON")
	}

	var missing []string
	if probe.Title == nil {
		missing = append(missing, "title")
	}
	if probe.Category == nil {
		missing = append(missing, "category")
	}
	if probe.Difficulty == nil {
		missing = append(missing, "difficulty")
	}
	if probe.Roadmap == nil {
		missing = append(missing, "roadmap")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("roadmap document missing required keys: %s", strings.Join(missing, ", "))
	}
	if probe.Roadmap.Name == nil {
		return nil, apperr.Validation("roadmap missing 'name' field")
	}
	if probe.Roadmap.Levels == nil {
		return nil, apperr.Validation("roadmap missing 'levels' field")
	}
	if !types.ValidDifficulty(*probe.Difficulty) {
		return nil, apperr.Validation("invalid difficulty %q, must be beginner, intermediate or advanced", *probe.Difficulty)
	}
	if len(probe.Roadmap.Levels) == 0 {
		return nil, apperr.Validation("roadmap must have at least one level")
	}

	doc := &types.RoadmapDocument{
		Title:      *probe.Title,
		Category:   *probe.Category,
		Difficulty: *probe.Difficulty,
		Roadmap: types.RoadmapPlan{
			Name:   *probe.Roadmap.Name,
			Levels: make([]types.LevelPlan, 0, len(probe.Roadmap.Levels)),
		},
	}
	for i, l := range probe.Roadmap.Levels {
		var levelMissing []string
		if l.Order == nil {
			levelMissing = append(levelMissing, "order")
		}
		if l.Title == nil {
			levelMissing = append(levelMissing, "title")
		}
		if l.Description == nil {
			levelMissing = append(levelMissing, "description")
		}
		if l.Topics == nil {
			levelMissing = append(levelMissing, "topics")
		}
		if l.XPReward == nil {
			levelMissing = append(levelMissing, "xp_reward")
		}
		if len(levelMissing) > 0 {
			return nil, apperr.Validation("level %d missing required keys: %s", i+1, strings.Join(levelMissing, ", "))
		}
		doc.Roadmap.Levels = append(doc.Roadmap.Levels, types.LevelPlan{
			Order:       *l.Order,
			Title:       *l.Title,
			Description: *l.Description,
			Topics:      *l.Topics,
			XPReward:    *l.XPReward,
		})
	}

	// Orders must form the dense sequence 1..N so the unlock cascade has
	// a well-defined successor for every level.
	seen := make(map[int]bool, len(doc.Roadmap.Levels))
	for _, l := range doc.Roadmap.Levels {
		if l.Order < 1 || l.Order > len(doc.Roadmap.Levels) || seen[l.Order] {
			return nil, apperr.Validation("level orders must be a dense sequence 1..%d, got duplicate or out-of-range order %d", len(doc.Roadmap.Levels), l.Order)
		}
		seen[l.Order] = true
	}

	return doc, nil
}

// ParseQuizDocument parses and validates a raw quiz document.
func ParseQuizDocument(raw []byte) (*types.QuizDocument, error) {
	var probe struct {
		Questions *[]struct {
			ID            *int                `json:"id"`
			Question      *string             `json:"question"`
			Options       *[]types.QuizOption `json:"options"`
			CorrectAnswer *string             `json:"correct_answer"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "generator returned invalid JSON")
	}
	if probe.Questions == nil {
		return nil, apperr.Validation("quiz document missing 'questions' field")
	}
	if len(*probe.Questions) == 0 {
		return nil, apperr.Validation("generator produced no questions")
	}

	doc := &types.QuizDocument{Questions: make([]types.QuizQuestion, 0, len(*probe.Questions))}
	for i, q := range *probe.Questions {
		var missing []string
		if q.ID == nil {
			missing = append(missing, "id")
		}
		if q.Question == nil {
			missing = append(missing, "question")
		}
		if q.Options == nil {
			missing = append(missing, "options")
		}
		if q.CorrectAnswer == nil {
			missing = append(missing, "correct_answer")
		}
		if len(missing) > 0 {
			return nil, apperr.Validation("question %d missing required keys: %s", i+1, strings.Join(missing, ", "))
		}
		if len(*q.Options) != 4 {
			return nil, apperr.Validation("question %d must have exactly 4 options, got %d", i+1, len(*q.Options))
		}
		if !quizAnswerLabels[*q.CorrectAnswer] {
			return nil, apperr.Validation("question %d correct_answer %q is not one of A, B, C, D", i+1, *q.CorrectAnswer)
		}
		labelPresent := false
		for _, opt := range *q.Options {
			if opt.Value == *q.CorrectAnswer {
				labelPresent = true
				break
			}
		}
		if !labelPresent {
			return nil, apperr.Validation("question %d correct_answer %q does not match any option label", i+1, *q.CorrectAnswer)
		}
		doc.Questions = append(doc.Questions, types.QuizQuestion{
			ID:            *q.ID,
			Question:      *q.Question,
			Options:       *q.Options,
			CorrectAnswer: *q.CorrectAnswer,
		})
	}
	return doc, nil
}
