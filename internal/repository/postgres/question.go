package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// List retrieves all questions ordered by id
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return scanQuestions(rows)
}

// ListByCategory retrieves all questions of a category ordered by id
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return scanQuestions(rows)
}

// Search retrieves questions whose text contains term, ignoring case.
// LIKE wildcards in term are matched literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE $1 ESCAPE '\'
		ORDER BY id
	`, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return scanQuestions(rows)
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create inserts a question and sets its ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		question.Question,
		question.Answer,
		question.Category,
		question.Difficulty,
	).Scan(&question.ID)
	if err != nil {
		return classify("create question", err)
	}
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return classify("delete question", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// Count returns the number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// Random picks one question matching the filter uniformly at random
func (r *QuestionRepository) Random(ctx context.Context, filter domain.QuizFilter) (*domain.Question, error) {
	exclude := filter.ExcludeIDs
	if exclude == nil {
		// a NULL array would exclude every row
		exclude = []int{}
	}

	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE NOT (id = ANY($1::int[]))
			AND ($2::int = 0 OR category = $2::int)
		ORDER BY RANDOM()
		LIMIT 1
	`, exclude, filter.CategoryID).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get random question: %w", err)
	}
	return &question, nil
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
