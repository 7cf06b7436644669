package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/services"
	"github.com/yit/registration/internal/middleware"
)

// RegistrationController exposes the registration engine over HTTP. Role
// gating happens in the route setup; handlers only read the authenticated
// account id from the context.
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register enrolls the authenticated student in a course
// @Summary Register for a course
// @Description Enrolls the authenticated student in the given course
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegistrationActionRequest true "Course to register for"
// @Success 201 {object} dto.PopulatedRegistration "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "No seats, duplicate registration, or slot conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/register [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	var req dto.RegistrationActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	view, err := c.registrationService.Register(ctx, middleware.UserID(ctx), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

// Drop releases the authenticated student's seat in a course
// @Summary Drop a course
// @Description Flips the active registration to dropped and frees the seat
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegistrationActionRequest true "Course to drop"
// @Success 200 {object} dto.SuccessResponse "Course dropped"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "No active registration for this course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/drop [post]
func (c *RegistrationController) Drop(ctx *gin.Context) {
	var req dto.RegistrationActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.registrationService.Drop(ctx, middleware.UserID(ctx), req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Course dropped successfully"})
}

// MyCourses lists the authenticated student's active registrations
// @Summary List my active registrations
// @Description Returns the authenticated student's active registrations with populated course data
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PopulatedRegistration "Active registrations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/my-courses [get]
func (c *RegistrationController) MyCourses(ctx *gin.Context) {
	views, err := c.registrationService.ListActiveForStudent(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views)
}

// All lists every active registration system-wide
// @Summary List all active registrations
// @Description Administrative view of every active registration with populated data
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PopulatedRegistration "Active registrations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not faculty"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/all [get]
func (c *RegistrationController) All(ctx *gin.Context) {
	views, err := c.registrationService.ListAllActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views)
}
