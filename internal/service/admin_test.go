package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository/memory"
)

func TestAdminStats_CountsEverything(t *testing.T) {
	store := memory.New()
	quizSvc := NewQuizService(store.Quizzes(), store.QuizResults(), store.Users(), testLogger())
	challengeSvc := newTestChallengeService(store, SimulatedRunner{})
	admin := NewAdminService(
		store.Users(), store.Quizzes(), store.QuizResults(),
		store.Challenges(), store.ChallengeResults(),
	)

	student := seedUser(t, store)
	seedUser(t, store) // second student
	adminAccount := &model.User{
		ID: "admin-1", Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin,
	}
	if err := store.Users().Insert(context.Background(), adminAccount); err != nil {
		t.Fatalf("inserting admin: %v", err)
	}

	quiz := seedQuiz(t, quizSvc, 100)
	challenge := seedChallenge(t, challengeSvc, 50)

	if _, err := quizSvc.Submit(context.Background(), student.ID, SubmitInput{QuizID: quiz.ID}); err != nil {
		t.Fatalf("quiz Submit: %v", err)
	}
	if _, err := challengeSvc.Submit(context.Background(), student.ID, SubmissionInput{
		ChallengeID: challenge.ID, Code: "x", Language: "python",
	}); err != nil {
		t.Fatalf("challenge Submit: %v", err)
	}

	stats, err := admin.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	// Two seeded users are students; the admin account is excluded.
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalQuizzes != 1 || stats.TotalChallenges != 1 {
		t.Errorf("quizzes/challenges = %d/%d, want 1/1", stats.TotalQuizzes, stats.TotalChallenges)
	}
	if stats.TotalQuizAttempts != 1 || stats.TotalChallengeAttempts != 1 {
		t.Errorf("attempts = %d/%d, want 1/1", stats.TotalQuizAttempts, stats.TotalChallengeAttempts)
	}
}

func TestLeaderboard_RanksStudentsOnly(t *testing.T) {
	store := memory.New()
	svc := NewLeaderboardService(store.Users())

	points := []int{30, 10, 50}
	for i, p := range points {
		u := &model.User{
			ID:     fmt.Sprintf("student-%d", i),
			Email:  fmt.Sprintf("s%d@example.com", i),
			Name:   fmt.Sprintf("Student %d", i),
			Role:   model.RoleStudent,
			Points: p,
			Level:  1,
		}
		if err := store.Users().Insert(context.Background(), u); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	adminUser := &model.User{
		ID: "admin-1", Email: "admin@example.com", Name: "Admin",
		Role: model.RoleAdmin, Points: 999,
	}
	if err := store.Users().Insert(context.Background(), adminUser); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3 (admin excluded)", len(entries))
	}
	wantOrder := []int{50, 30, 10}
	for i, e := range entries {
		if e.Points != wantOrder[i] {
			t.Errorf("entry %d points = %d, want %d", i, e.Points, wantOrder[i])
		}
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, e.Rank, i+1)
		}
	}
}
