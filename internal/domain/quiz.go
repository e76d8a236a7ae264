package domain

// AI-generated documents. Both generators return free-form structured text
// that is parsed and validated before anything touches the store.

type RoadmapDocument struct {
	Title      string      `json:"title"`
	Category   string      `json:"category"`
	Difficulty string      `json:"difficulty"`
	Roadmap    RoadmapPlan `json:"roadmap"`
}

type RoadmapPlan struct {
	Name   string      `json:"name"`
	Levels []LevelPlan `json:"levels"`
}

type LevelPlan struct {
	Order       int     `json:"order"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Topics      []Topic `json:"topics"`
	XPReward    int     `json:"xp_reward"`
}

type QuizOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type QuizQuestion struct {
	ID            int          `json:"id"`
	Question      string       `json:"question"`
	Options       []QuizOption `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
}

type QuizDocument struct {
	Questions []QuizQuestion `json:"questions"`
}

// Quiz is the per-request payload returned to the client. Quizzes are
// generated fresh on every fetch and never persisted.
type Quiz struct {
	LevelID    uint           `json:"level_id"`
	LevelTitle string         `json:"level_title"`
	TimeLimit  int            `json:"time_limit"`
	Questions  []QuizQuestion `json:"questions"`
}

type QuizSubmission struct {
	Score     int  `json:"score"`
	Passed    bool `json:"passed"`
	TimeTaken int  `json:"time_taken"`
}

type QuizResult struct {
	Passed            bool   `json:"passed"`
	XPEarned          int    `json:"xp_earned"`
	NextLevelUnlocked bool   `json:"next_level_unlocked"`
	Message           string `json:"message"`
}

// ProgressionStats is the per-user progression summary.
type ProgressionStats struct {
	TotalExp                 int `json:"total_exp"`
	LevelsCompleted          int `json:"levels_completed"`
	GoalCompletionPercentage int `json:"goal_completion_percentage"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	TotalExp int    `json:"total_exp"`
}

type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	CurrentUser LeaderboardEntry   `json:"current_user"`
}
