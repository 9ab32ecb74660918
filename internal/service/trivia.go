package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

// EventPublisher receives question change notifications
type EventPublisher interface {
	Publish(eventType string, question domain.Question)
}

// Page is one page of an ordered question result set
type Page struct {
	Questions []domain.Question
	Total     int // size of the full result set
}

func newPage(all []domain.Question, page int) Page {
	return Page{
		Questions: pagination.Slice(all, page),
		Total:     len(all),
	}
}

// TriviaService implements the question and quiz operations
type TriviaService struct {
	questionRepo domain.QuestionRepository
	categoryRepo domain.CategoryRepository
	cache        domain.CategoryCache
	events       EventPublisher
}

// NewTriviaService creates a new trivia service. cache and events may be nil.
func NewTriviaService(questionRepo domain.QuestionRepository, categoryRepo domain.CategoryRepository, cache domain.CategoryCache, events EventPublisher) *TriviaService {
	return &TriviaService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		events:       events,
	}
}

// Categories returns all categories ordered by id
func (s *TriviaService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.allCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

func (s *TriviaService) allCategories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		categories, err := s.cache.Get(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("category cache read failed: %v", err)
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// an empty list is not cached so newly seeded categories show up at once
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			log.Printf("category cache write failed: %v", err)
		}
	}
	return categories, nil
}

// ListQuestions returns a page of all questions along with every category.
// An empty page is reported as ErrEmptyPage.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (Page, []domain.Category, error) {
	all, err := s.questionRepo.List(ctx)
	if err != nil {
		return Page{}, nil, err
	}

	p := newPage(all, page)
	if len(p.Questions) == 0 {
		return Page{}, nil, ErrEmptyPage
	}

	categories, err := s.allCategories(ctx)
	if err != nil {
		return Page{}, nil, err
	}
	return p, categories, nil
}

// DeleteQuestion removes a question and returns how many remain
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) (int, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return 0, err
	}

	remaining, err := s.questionRepo.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.publish(websocket.EventQuestionDeleted, *question)
	return remaining, nil
}

// CreateQuestion stores question, setting its ID, and returns the requested
// page of all questions
func (s *TriviaService) CreateQuestion(ctx context.Context, question *domain.Question, page int) (Page, error) {
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return Page{}, err
	}
	s.publish(websocket.EventQuestionCreated, *question)

	all, err := s.questionRepo.List(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("failed to list questions after create: %w", err)
	}
	return newPage(all, page), nil
}

// SearchQuestions returns a page of questions whose text contains term.
// No matches is an empty page, not an error.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (Page, error) {
	if term == "" {
		return Page{}, ErrEmptySearchTerm
	}

	matches, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return Page{}, err
	}
	return newPage(matches, page), nil
}

// QuestionsByCategory returns a page of the category's questions
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int, page int) (Page, *domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return Page{}, nil, err
	}

	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, nil, err
	}
	return newPage(questions, page), category, nil
}

// NextQuizQuestion picks a random question matching filter. It returns nil
// without error once the candidate set is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, filter domain.QuizFilter) (*domain.Question, error) {
	question, err := s.questionRepo.Random(ctx, filter)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return question, nil
}

func (s *TriviaService) publish(eventType string, question domain.Question) {
	if s.events != nil {
		s.events.Publish(eventType, question)
	}
}
