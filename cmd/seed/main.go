// Command seed resets the database and loads demo accounts, quizzes, and
// challenges for local development. It drops users, quizzes, and
// challenges first; run it against a database you are willing to lose.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/config"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository/mongo"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("database seeded",
		slog.String("admin", "admin@prep.com / admin123"),
		slog.String("student", "student@prep.com / student123"),
	)
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongo.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	for _, col := range []string{mongo.ColUsers, mongo.ColQuizzes, mongo.ColChallenges} {
		if err := db.Collection(col).Drop(ctx); err != nil {
			return err
		}
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	passwords := auth.NewPasswordService()
	now := time.Now().UTC()

	adminHash, err := passwords.Hash("admin123")
	if err != nil {
		return err
	}
	studentHash, err := passwords.Hash("student123")
	if err != nil {
		return err
	}

	users := []*model.User{
		{
			ID:           uuid.NewString(),
			Email:        "admin@prep.com",
			Name:         "Admin User",
			Role:         model.RoleAdmin,
			PasswordHash: adminHash,
			Level:        10,
			Points:       5000,
			Badges:       []string{"Admin"},
			CreatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Email:        "student@prep.com",
			Name:         "Test Student",
			Role:         model.RoleStudent,
			PasswordHash: studentHash,
			Level:        5,
			Points:       1200,
			Badges:       []string{"Beginner", "Problem Solver"},
			CreatedAt:    now,
		},
	}
	for _, u := range users {
		if err := db.Users().Insert(ctx, u); err != nil {
			return err
		}
	}
	logger.Info("users inserted", slog.Int("count", len(users)))

	quizzes := []*model.Quiz{
		{
			ID:          uuid.NewString(),
			Title:       "Data Structures Fundamentals",
			Description: "Test your knowledge of arrays, linked lists, and trees",
			Questions: []model.Question{
				{
					ID:            "q1",
					Question:      "What is the time complexity of accessing an element in an array by index?",
					Options:       []string{"O(1)", "O(n)", "O(log n)", "O(n^2)"},
					CorrectAnswer: "O(1)",
				},
				{
					ID:            "q2",
					Question:      "Which data structure follows LIFO principle?",
					Options:       []string{"Queue", "Stack", "Array", "Tree"},
					CorrectAnswer: "Stack",
				},
				{
					ID:            "q3",
					Question:      "What is the worst case time complexity of binary search?",
					Options:       []string{"O(1)", "O(n)", "O(log n)", "O(n log n)"},
					CorrectAnswer: "O(log n)",
				},
			},
			Difficulty: "medium",
			Category:   "data-structures",
			Company:    "Google",
			TimeLimit:  15,
			Points:     100,
			CreatedAt:  now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Algorithm Complexity",
			Description: "Master Big O notation and time complexity analysis",
			Questions: []model.Question{
				{
					ID:            "q1",
					Question:      "What is the time complexity of bubble sort?",
					Options:       []string{"O(n)", "O(n^2)", "O(log n)", "O(n log n)"},
					CorrectAnswer: "O(n^2)",
				},
				{
					ID:            "q2",
					Question:      "Which sorting algorithm has best average case complexity?",
					Options:       []string{"Bubble Sort", "Merge Sort", "Selection Sort", "Insertion Sort"},
					CorrectAnswer: "Merge Sort",
				},
			},
			Difficulty: "easy",
			Category:   "algorithms",
			Company:    "Microsoft",
			TimeLimit:  10,
			Points:     80,
			CreatedAt:  now,
		},
	}
	for _, q := range quizzes {
		if err := db.Quizzes().Insert(ctx, q); err != nil {
			return err
		}
	}
	logger.Info("quizzes inserted", slog.Int("count", len(quizzes)))

	challenges := []*model.Challenge{
		{
			ID:          uuid.NewString(),
			Title:       "Two Sum Problem",
			Description: "Given an array of integers nums and an integer target, return indices of the two numbers that add up to target.\n\nExample:\nInput: nums = [2,7,11,15], target = 9\nOutput: [0,1]\nExplanation: nums[0] + nums[1] = 9",
			TestCases: []model.TestCase{
				{Input: "nums = [2,7,11,15], target = 9", Expected: "[0,1]"},
				{Input: "nums = [3,2,4], target = 6", Expected: "[1,2]"},
				{Input: "nums = [3,3], target = 6", Expected: "[0,1]"},
			},
			Difficulty:      "easy",
			Company:         "Amazon",
			LanguageSupport: []string{"Python", "JavaScript", "Java"},
			Points:          150,
			StarterCode: map[string]string{
				"python":     "def two_sum(nums, target):\n    # Write your code here\n    pass",
				"javascript": "function twoSum(nums, target) {\n    // Write your code here\n}",
				"java":       "public int[] twoSum(int[] nums, int target) {\n    // Write your code here\n}",
			},
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Reverse Linked List",
			Description: "Given the head of a singly linked list, reverse the list and return the reversed list.\n\nExample:\nInput: 1 -> 2 -> 3 -> 4 -> 5\nOutput: 5 -> 4 -> 3 -> 2 -> 1",
			TestCases: []model.TestCase{
				{Input: "head = [1,2,3,4,5]", Expected: "[5,4,3,2,1]"},
				{Input: "head = [1,2]", Expected: "[2,1]"},
				{Input: "head = []", Expected: "[]"},
			},
			Difficulty:      "medium",
			Company:         "Google",
			LanguageSupport: []string{"Python", "JavaScript", "Java", "C++"},
			Points:          200,
			StarterCode: map[string]string{
				"python":     "def reverse_list(head):\n    # Write your code here\n    pass",
				"javascript": "function reverseList(head) {\n    // Write your code here\n}",
				"java":       "public ListNode reverseList(ListNode head) {\n    // Write your code here\n}",
			},
			CreatedAt: now,
		},
	}
	for _, c := range challenges {
		if err := db.Challenges().Insert(ctx, c); err != nil {
			return err
		}
	}
	logger.Info("challenges inserted", slog.Int("count", len(challenges)))

	return nil
}
