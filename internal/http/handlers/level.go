package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/http/response"
	"github.com/yungbote/questpath-backend/internal/requestdata"
	"github.com/yungbote/questpath-backend/internal/services"
)

// LevelHandler serves the per-level endpoints: topic toggling and the
// quiz fetch/submit pair.
type LevelHandler struct {
	progressionService services.ProgressionService
}

func NewLevelHandler(progressionService services.ProgressionService) *LevelHandler {
	return &LevelHandler{progressionService: progressionService}
}

func (lh *LevelHandler) ToggleTopic(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	levelID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	topicIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	level, err := lh.progressionService.ToggleTopic(c.Request.Context(), rd.UserID, levelID, topicIndex)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, level)
}

func (lh *LevelHandler) GetQuiz(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	levelID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quiz, err := lh.progressionService.GetQuiz(c.Request.Context(), rd.UserID, levelID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, quiz)
}

func (lh *LevelHandler) SubmitQuiz(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	levelID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var submission types.QuizSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := lh.progressionService.SubmitQuiz(c.Request.Context(), rd.UserID, levelID, submission)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}
