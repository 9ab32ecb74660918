package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuizHandler serves quiz questions
type QuizHandler struct {
	trivia *service.TriviaService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(trivia *service.TriviaService) *QuizHandler {
	return &QuizHandler{
		trivia: trivia,
	}
}

// Register registers the quiz routes
func (h *QuizHandler) Register(e *echo.Echo) {
	e.POST("/quizzes", h.NextQuestion)
}

// QuizRequest identifies the quiz category and the questions already asked
type QuizRequest struct {
	QuizCategory struct {
		ID flexInt `json:"id"`
	} `json:"quiz_category"`
	PreviousQuestions []flexInt `json:"previous_questions"`
}

// QuizResponse carries the next question, or null when none are left
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// NextQuestion picks a random question not asked yet. A category id no
// question can carry leaves nothing to pick.
func (h *QuizHandler) NextQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	categoryID := int(req.QuizCategory.ID)
	if !fitsInt4(categoryID) {
		return c.JSON(http.StatusOK, QuizResponse{Success: true})
	}

	exclude := make([]int, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		// no stored question has an id outside int4
		if fitsInt4(int(id)) {
			exclude = append(exclude, int(id))
		}
	}

	question, err := h.trivia.NextQuizQuestion(c.Request().Context(), domain.QuizFilter{
		CategoryID: categoryID,
		ExcludeIDs: exclude,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: question,
	})
}
