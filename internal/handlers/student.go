package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/services"
)

type StudentHandler struct {
	log            *logger.Logger
	studentService services.StudentService
}

func NewStudentHandler(log *logger.Logger, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		log:            log.With("handler", "StudentHandler"),
		studentService: studentService,
	}
}

// GetStudent returns the record for a registration, creating a default-empty
// one when it does not exist yet. Creation answers 201.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	registration := c.Param("studentId")

	student, created, err := h.studentService.GetOrCreate(c.Request.Context(), registration)
	if err != nil {
		h.respondServiceError(c, "load_student_failed", err)
		return
	}
	if created {
		RespondCreated(c, student)
		return
	}
	RespondOK(c, student)
}

type patchProfileRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
}

func (h *StudentHandler) PatchProfile(c *gin.Context) {
	registration := c.Param("studentId")

	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	student, err := h.studentService.UpdateProfile(c.Request.Context(), registration, req.Name, req.LastName)
	if err != nil {
		h.respondServiceError(c, "patch_profile_failed", err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) PutCompletedDiscipline(c *gin.Context) {
	student, err := h.studentService.SetCompleted(c.Request.Context(), c.Param("studentId"), c.Param("disciplineId"))
	if err != nil {
		h.respondServiceError(c, "set_completed_failed", err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) DeleteCompletedDiscipline(c *gin.Context) {
	student, err := h.studentService.UnsetCompleted(c.Request.Context(), c.Param("studentId"), c.Param("disciplineId"))
	if err != nil {
		h.respondServiceError(c, "unset_completed_failed", err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) PutCurrentDiscipline(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_class_number", err)
		return
	}
	student, err := h.studentService.SetCurrent(c.Request.Context(), c.Param("studentId"), c.Param("disciplineId"), classNumber)
	if err != nil {
		h.respondServiceError(c, "set_current_failed", err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) DeleteCurrentDiscipline(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_class_number", err)
		return
	}
	student, err := h.studentService.UnsetCurrent(c.Request.Context(), c.Param("studentId"), c.Param("disciplineId"), classNumber)
	if err != nil {
		h.respondServiceError(c, "unset_current_failed", err)
		return
	}
	RespondOK(c, student)
}

// DeleteDisciplineStatus sets a discipline back to not-taken on both lists.
func (h *StudentHandler) DeleteDisciplineStatus(c *gin.Context) {
	student, err := h.studentService.ClearStatus(c.Request.Context(), c.Param("studentId"), c.Param("disciplineId"))
	if err != nil {
		h.respondServiceError(c, "clear_status_failed", err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, code, err)
	default:
		h.log.Error("Student operation failed", "code", code, "error", err)
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
