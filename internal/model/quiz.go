package model

import "time"

// Question is a single multiple-choice question inside a quiz.
type Question struct {
	ID            string   `json:"id"            bson:"id"`
	Question      string   `json:"question"      bson:"question"`
	Options       []string `json:"options"       bson:"options"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correct_answer"`
}

// Quiz is a timed multiple-choice assessment worth a fixed number of points.
type Quiz struct {
	ID          string     `json:"id"                bson:"id"`
	Title       string     `json:"title"             bson:"title"`
	Description string     `json:"description"       bson:"description"`
	Questions   []Question `json:"questions"         bson:"questions"`
	Difficulty  string     `json:"difficulty"        bson:"difficulty"`
	Category    string     `json:"category"          bson:"category"`
	Company     string     `json:"company,omitempty" bson:"company,omitempty"`
	TimeLimit   int        `json:"timeLimit"         bson:"time_limit"` // minutes
	Points      int        `json:"points"            bson:"points"`
	CreatedAt   time.Time  `json:"createdAt"         bson:"created_at"`
}

// QuizResult records one graded attempt at a quiz.
//
// PointsEarned is proportional: score/total of the quiz's points, truncated.
type QuizResult struct {
	ID             string    `json:"id"             bson:"id"`
	UserID         string    `json:"userId"         bson:"user_id"`
	QuizID         string    `json:"quizId"         bson:"quiz_id"`
	Score          int       `json:"score"          bson:"score"`
	TotalQuestions int       `json:"totalQuestions" bson:"total_questions"`
	TimeTaken      int       `json:"timeTaken"      bson:"time_taken"` // seconds
	PointsEarned   int       `json:"pointsEarned"   bson:"points_earned"`
	CompletedAt    time.Time `json:"completedAt"    bson:"completed_at"`
}
