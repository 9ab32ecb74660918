package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	trivia *service.TriviaService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(trivia *service.TriviaService) *CategoryHandler {
	return &CategoryHandler{
		trivia: trivia,
	}
}

// Register registers the category routes
func (h *CategoryHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.GetCategories)
	e.GET("/categories/:id/questions", h.GetCategoryQuestions)
}

// CategoriesResponse lists every category keyed by id
type CategoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

// GetCategories returns all categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.trivia.Categories(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCategories) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: domain.CategoryMap(categories),
	})
}

// CategoryQuestionsResponse is one page of a category's questions
type CategoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory string            `json:"current_category"`
}

// GetCategoryQuestions returns a page of the questions in a category.
// An empty page is still a success.
func (h *CategoryHandler) GetCategoryQuestions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, category, err := h.trivia.QuestionsByCategory(c.Request().Context(), id, pageParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: category.Type,
	})
}
