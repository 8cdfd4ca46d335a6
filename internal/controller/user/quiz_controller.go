package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/coursequiz/internal/controller"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/lshigami/coursequiz/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService    service.QuizService
	scoringService service.ScoringService
}

func NewQuizController(quizService service.QuizService, scoringService service.ScoringService) *QuizController {
	return &QuizController{quizService: quizService, scoringService: scoringService}
}

// GenerateQuiz godoc
// @Summary (User) Generate a quiz for a course
// @Description Binds up to 10 questions from the course's bank at the given difficulty, synthesizing new questions from the course text when the bank is short.
// @Tags User - Quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Course and difficulty (easy, medium, hard)"
// @Success 201 {object} dto.GenerateQuizResponse "Quiz created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or empty course text"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 422 {object} dto.ErrorResponse "No questions could be synthesized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "GenerateQuiz", err)
		return
	}

	quiz, err := c.quizService.SynthesizeQuiz(ctx.Request.Context(), req.CourseID, model.Difficulty(req.Difficulty))
	if err != nil {
		controller.RespondError(ctx, "GenerateQuiz", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.GenerateQuizResponse{QuizID: quiz.ID, QuestionCount: len(quiz.QuestionIDs)})
}

// GetQuiz godoc
// @Summary (User) Get a quiz
// @Description Returns the quiz questions in bound order. Correct answers are not included.
// @Tags User - Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Quiz ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := controller.ParseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), quizID)
	if err != nil {
		controller.RespondError(ctx, "GetQuiz", err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary (User) Submit answers for a quiz
// @Description Scores the submission by exact match against each question's correct answer and records the attempt. user_id is optional.
// @Tags User - Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.SubmitQuizRequest true "Answers"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Empty submission or invalid body"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID, ok := controller.ParseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "SubmitQuiz", err)
		return
	}

	resp, err := c.scoringService.ScoreSubmission(ctx.Request.Context(), quizID, req)
	if err != nil {
		controller.RespondError(ctx, "SubmitQuiz", err)
		return
	}
	log.Debug().Uint("quizID", quizID).Int("score", resp.Score).Msg("User SubmitQuiz: scored")
	ctx.JSON(http.StatusCreated, resp)
}

// ListAttempts godoc
// @Summary (User) List attempts for a quiz
// @Description Newest first. Filtered to one taker when user_id is given.
// @Tags User - Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query string false "Taker identity"
// @Success 200 {array} dto.AttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Quiz ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	quizID, ok := controller.ParseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}
	attempts, err := c.scoringService.ListAttempts(ctx.Request.Context(), quizID, ctx.Query("user_id"))
	if err != nil {
		controller.RespondError(ctx, "ListAttempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
