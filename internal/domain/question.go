package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuizFilter narrows the candidate set a quiz question is drawn from
type QuizFilter struct {
	CategoryID int   // 0 means any category
	ExcludeIDs []int // questions already shown in this quiz
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by id
	List(ctx context.Context) ([]Question, error)

	// ListByCategory retrieves all questions of a category ordered by id
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// Search retrieves questions whose text contains term, ignoring case
	Search(ctx context.Context, term string) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and sets its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error

	// Count returns the number of stored questions
	Count(ctx context.Context) (int, error)

	// Random picks one question matching the filter uniformly at random.
	// It returns ErrQuestionNotFound when the candidate set is empty.
	Random(ctx context.Context, filter QuizFilter) (*Question, error)
}
