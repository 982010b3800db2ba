package model

import "time"

// TestCase is one input/expected-output pair for a coding challenge.
type TestCase struct {
	Input    string `json:"input"    bson:"input"`
	Expected string `json:"expected" bson:"expected"`
}

// Challenge is a coding problem with per-language starter code.
type Challenge struct {
	ID              string            `json:"id"              bson:"id"`
	Title           string            `json:"title"           bson:"title"`
	Description     string            `json:"description"     bson:"description"`
	TestCases       []TestCase        `json:"testCases"       bson:"test_cases"`
	Difficulty      string            `json:"difficulty"      bson:"difficulty"`
	Company         string            `json:"company"         bson:"company"`
	LanguageSupport []string          `json:"languageSupport" bson:"language_support"`
	Points          int               `json:"points"          bson:"points"`
	StarterCode     map[string]string `json:"starterCode"     bson:"starter_code"` // language → code
	CreatedAt       time.Time         `json:"createdAt"       bson:"created_at"`
}

// Submission statuses recorded on a ChallengeResult.
const (
	SubmissionAccepted = "Accepted"
	SubmissionFailed   = "Failed"
)

// ChallengeResult records one submission against a challenge.
type ChallengeResult struct {
	ID           string    `json:"id"           bson:"id"`
	UserID       string    `json:"userId"       bson:"user_id"`
	ChallengeID  string    `json:"challengeId"  bson:"challenge_id"`
	Code         string    `json:"code"         bson:"code"`
	Language     string    `json:"language"     bson:"language"`
	Status       string    `json:"status"       bson:"status"`
	PassedTests  int       `json:"passedTests"  bson:"passed_tests"`
	TotalTests   int       `json:"totalTests"   bson:"total_tests"`
	PointsEarned int       `json:"pointsEarned" bson:"points_earned"`
	SubmittedAt  time.Time `json:"submittedAt"  bson:"submitted_at"`
}
