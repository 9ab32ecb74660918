package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// setupTestDB connects to TRIVIA_TEST_DATABASE_URL and recreates the schema,
// skipping the test when no database is configured
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TRIVIA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TRIVIA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS questions; DROP TABLE IF EXISTS categories;`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := CreateSchema(ctx, pool); err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO categories (type) VALUES ('Science'), ('Art'), ('Geography')`); err != nil {
		t.Fatalf("Failed to seed categories: %v", err)
	}
	return pool
}

func createQuestion(t *testing.T, repo *QuestionRepository, text string, category int) *domain.Question {
	t.Helper()
	q := &domain.Question{Question: text, Answer: "answer", Category: category, Difficulty: 1}
	if err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}
	return q
}

func TestQuestionRepositoryCRUD(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewQuestionRepository(pool)
	ctx := context.Background()

	first := createQuestion(t, repo, "Who painted the Mona Lisa?", 2)
	second := createQuestion(t, repo, "What is H2O?", 1)
	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *first {
		t.Errorf("GetByID = %+v, want %+v", got, first)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != first.ID {
		t.Errorf("unexpected list: %+v", all)
	}

	art, err := repo.ListByCategory(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(art) != 1 || art[0].ID != first.ID {
		t.Errorf("unexpected category list: %+v", art)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, first.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("second delete: expected ErrQuestionNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, first.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count = %d (%v), want 1", n, err)
	}
}

func TestQuestionRepositorySearch(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewQuestionRepository(pool)
	ctx := context.Background()

	createQuestion(t, repo, "What is the TITLE of the film?", 1)
	createQuestion(t, repo, "Is 100% of the moon visible?", 1)
	createQuestion(t, repo, "Is 1000 larger than 100?", 1)

	tests := []struct {
		term string
		want int
	}{
		{"title", 1},
		{"100", 2},
		{"100%", 1},
		{"_", 0},
		{"nonexistent-xyz", 0},
	}

	for _, tt := range tests {
		got, err := repo.Search(ctx, tt.term)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != tt.want {
			t.Errorf("Search(%q) returned %d questions, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestQuestionRepositoryRandom(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewQuestionRepository(pool)
	ctx := context.Background()

	a := createQuestion(t, repo, "a", 1)
	b := createQuestion(t, repo, "b", 1)
	c := createQuestion(t, repo, "c", 2)

	q, err := repo.Random(ctx, domain.QuizFilter{CategoryID: 1, ExcludeIDs: []int{a.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if q.ID != b.ID {
		t.Errorf("Random = %d, want %d", q.ID, b.ID)
	}

	q, err = repo.Random(ctx, domain.QuizFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if q.ID != a.ID && q.ID != b.ID && q.ID != c.ID {
		t.Errorf("Random returned unknown question %d", q.ID)
	}

	_, err = repo.Random(ctx, domain.QuizFilter{ExcludeIDs: []int{a.ID, b.ID, c.ID}})
	if !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestCategoryRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCategoryRepository(pool)
	ctx := context.Background()

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 3 || categories[0].Type != "Science" {
		t.Errorf("unexpected categories: %+v", categories)
	}

	c, err := repo.GetByID(ctx, categories[1].ID)
	if err != nil || c.Type != "Art" {
		t.Errorf("GetByID = %+v (%v)", c, err)
	}
	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":  "plain",
		"100%":   `100\%`,
		"a_b":    `a\_b`,
		`back\s`: `back\\s`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"not null", &pgconn.PgError{Code: "23502"}, domain.KindConstraint},
		{"unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), domain.KindConstraint},
		{"connection", &pgconn.PgError{Code: "08006"}, domain.KindUnavailable},
		{"shutdown", &pgconn.PgError{Code: "57P01"}, domain.KindUnavailable},
		{"deadline", context.DeadlineExceeded, domain.KindUnavailable},
		{"syntax", &pgconn.PgError{Code: "42601"}, domain.KindUnknown},
		{"other", errors.New("boom"), domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("create question", tt.err)
			if got := domain.KindOf(err); got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("classified error does not wrap its cause")
			}
		})
	}
}
