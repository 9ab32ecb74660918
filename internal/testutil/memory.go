// Package testutil provides in-memory repositories and HTTP helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Store is an in-memory implementation of the question and category
// repositories. Set CreateErr to make the next inserts fail.
type Store struct {
	mu         sync.Mutex
	categories map[int]domain.Category
	questions  map[int]domain.Question
	nextID     int

	CreateErr error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		categories: make(map[int]domain.Category),
		questions:  make(map[int]domain.Question),
		nextID:     1,
	}
}

// AddCategory seeds a category
func (s *Store) AddCategory(id int, typ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = domain.Category{ID: id, Type: typ}
}

// AddQuestion seeds a question and returns its ID
func (s *Store) AddQuestion(question, answer string, category, difficulty int) int {
	q := &domain.Question{Question: question, Answer: answer, Category: category, Difficulty: difficulty}
	s.insert(q)
	return q.ID
}

func (s *Store) insert(q *domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = *q
}

// Categories is a domain.CategoryRepository view of the store
func (s *Store) Categories() domain.CategoryRepository {
	return categoryRepo{s}
}

// Questions is a domain.QuestionRepository view of the store
func (s *Store) Questions() domain.QuestionRepository {
	return questionRepo{s}
}

func (s *Store) filter(keep func(domain.Question) bool) []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// checkInt4 fails the way the postgres driver does when an id cannot be
// encoded for an INTEGER column
func checkInt4(ids ...int) error {
	for _, id := range ids {
		if id > math.MaxInt32 {
			return fmt.Errorf("%d is greater than maximum value for int4", id)
		}
		if id < math.MinInt32 {
			return fmt.Errorf("%d is less than minimum value for int4", id)
		}
	}
	return nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Category{}
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categoryRepo) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	if err := checkInt4(id); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

type questionRepo struct{ s *Store }

func (r questionRepo) List(ctx context.Context) ([]domain.Question, error) {
	return r.s.filter(func(domain.Question) bool { return true }), nil
}

func (r questionRepo) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	return r.s.filter(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

func (r questionRepo) Search(ctx context.Context, term string) ([]domain.Question, error) {
	term = strings.ToLower(term)
	return r.s.filter(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), nil
}

func (r questionRepo) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	if err := checkInt4(id); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return &q, nil
}

func (r questionRepo) Create(ctx context.Context, question *domain.Question) error {
	if r.s.CreateErr != nil {
		return r.s.CreateErr
	}
	r.s.insert(question)
	return nil
}

func (r questionRepo) Delete(ctx context.Context, id int) error {
	if err := checkInt4(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.s.questions, id)
	return nil
}

func (r questionRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.questions), nil
}

func (r questionRepo) Random(ctx context.Context, filter domain.QuizFilter) (*domain.Question, error) {
	if err := checkInt4(append([]int{filter.CategoryID}, filter.ExcludeIDs...)...); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		seen[id] = true
	}

	candidates := r.s.filter(func(q domain.Question) bool {
		if seen[q.ID] {
			return false
		}
		return filter.CategoryID == 0 || q.Category == filter.CategoryID
	})
	if len(candidates) == 0 {
		return nil, domain.ErrQuestionNotFound
	}

	q := candidates[rand.Intn(len(candidates))]
	return &q, nil
}
