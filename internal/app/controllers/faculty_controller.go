package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/services"
	"github.com/yit/registration/internal/middleware"
)

// FacultyController handles faculty profile endpoints
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// Me returns the authenticated faculty member's profile
// @Summary Get my faculty profile
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Faculty "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/me [get]
func (c *FacultyController) Me(ctx *gin.Context) {
	faculty, err := c.facultyService.GetByID(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// UpdateMe updates the authenticated faculty member's profile
// @Summary Update my faculty profile
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateFacultyProfileRequest true "Fields to update"
// @Success 200 {object} models.Faculty "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/me [put]
func (c *FacultyController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateFacultyProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	faculty, err := c.facultyService.UpdateProfile(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// MyCourses lists the courses owned by the authenticated faculty member
// @Summary List my courses
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/me/courses [get]
func (c *FacultyController) MyCourses(ctx *gin.Context) {
	courses, err := c.facultyService.ListCourses(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// Get returns a single faculty profile by ID
// @Summary Get a faculty profile
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Success 200 {object} models.Faculty "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [get]
func (c *FacultyController) Get(ctx *gin.Context) {
	faculty, err := c.facultyService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// Courses lists the courses owned by a faculty member by ID
// @Summary List a faculty member's courses
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Success 200 {array} models.Course "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id}/courses [get]
func (c *FacultyController) Courses(ctx *gin.Context) {
	courses, err := c.facultyService.ListCourses(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// List returns every faculty profile
// @Summary List faculty
// @Tags faculty
// @Produce json
// @Success 200 {array} models.Faculty "Faculty members"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (c *FacultyController) List(ctx *gin.Context) {
	members, err := c.facultyService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}
