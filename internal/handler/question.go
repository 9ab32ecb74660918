package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	trivia *service.TriviaService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(trivia *service.TriviaService) *QuestionHandler {
	return &QuestionHandler{
		trivia: trivia,
	}
}

// Register registers the question routes
func (h *QuestionHandler) Register(e *echo.Echo) {
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateQuestion)
	e.POST("/questions/search", h.SearchQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion)
}

// QuestionsResponse is one page of all questions
type QuestionsResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
	Categories     map[int]string    `json:"categories"`
}

// ListQuestions returns a page of all questions. A page with no questions,
// including one past the end, is a 404.
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	page, categories, err := h.trivia.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptyPage) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, QuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     domain.CategoryMap(categories),
	})
}

// DeleteQuestionResponse reports a deletion
type DeleteQuestionResponse struct {
	Success        bool `json:"success"`
	Deleted        int  `json:"deleted"`
	TotalQuestions int  `json:"total_questions"`
}

// DeleteQuestion deletes a question by id
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	remaining, err := h.trivia.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, DeleteQuestionResponse{
		Success:        true,
		Deleted:        id,
		TotalQuestions: remaining,
	})
}

// CreateQuestionRequest represents the request to create a new question.
// category and difficulty only need to be present, so zero is accepted.
type CreateQuestionRequest struct {
	Question   string   `json:"question" validate:"required"`
	Answer     string   `json:"answer" validate:"required"`
	Category   *flexInt `json:"category" validate:"required"`
	Difficulty *flexInt `json:"difficulty" validate:"required"`
}

// CreateQuestionResponse reports the new question id and a page of all questions
type CreateQuestionResponse struct {
	Success        bool              `json:"success"`
	Created        int               `json:"created"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreateQuestion handles the creation of a new question
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	question := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int(*req.Category),
		Difficulty: int(*req.Difficulty),
	}

	page, err := h.trivia.CreateQuestion(c.Request().Context(), question, pageParam(c))
	if err != nil {
		kind := domain.KindOf(err)
		c.Logger().Errorf("create question failed (%s): %v", kind, err)
		if kind == domain.KindUnavailable {
			return echo.NewHTTPError(http.StatusServiceUnavailable)
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// SearchRequest carries the search term
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// SearchResponse is one page of matching questions
type SearchResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// SearchQuestions finds questions containing the search term. An empty term
// is a 404; no matches is a success with no questions.
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	page, err := h.trivia.SearchQuestions(c.Request().Context(), req.SearchTerm, pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptySearchTerm) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}
