package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yit/registration/internal/app/controllers"
	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	registrationController *controllers.RegistrationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API group
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register/student", authController.RegisterStudent)
		auth.POST("/register/faculty", authController.RegisterFaculty)
		auth.POST("/login", authController.Login)
	}

	// --- Course routes ---
	courses := api.Group("/courses")
	{
		// Catalog browsing is public
		courses.GET("", courseController.List)
		courses.GET("/:id", courseController.Get)

		// Catalog changes require a faculty account
		coursesFacultyProtected := courses.Group("")
		coursesFacultyProtected.Use(authMiddleware.JWTAuth())
		coursesFacultyProtected.Use(authMiddleware.RoleRequired(string(models.RoleFaculty)))
		{
			coursesFacultyProtected.POST("", courseController.Create)
			coursesFacultyProtected.PUT("/:id", courseController.Update)
			coursesFacultyProtected.DELETE("/:id", courseController.Delete)
		}
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Student routes
	students := authenticated.Group("/students")
	{
		students.GET("", studentController.List)
		students.GET("/:id", studentController.Get)
		students.GET("/:id/courses", studentController.Courses)

		studentsOnly := students.Group("")
		studentsOnly.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			studentsOnly.GET("/me", studentController.Me)
			studentsOnly.PUT("/me", studentController.UpdateMe)
		}
	}

	// Faculty routes
	faculty := authenticated.Group("/faculty")
	{
		faculty.GET("", facultyController.List)
		faculty.GET("/:id", facultyController.Get)
		faculty.GET("/:id/courses", facultyController.Courses)

		facultyOnly := faculty.Group("")
		facultyOnly.Use(authMiddleware.RoleRequired(string(models.RoleFaculty)))
		{
			facultyOnly.GET("/me", facultyController.Me)
			facultyOnly.PUT("/me", facultyController.UpdateMe)
			facultyOnly.GET("/me/courses", facultyController.MyCourses)
		}
	}

	// Registration routes
	registrations := authenticated.Group("/registrations")
	{
		registrationsStudentOnly := registrations.Group("")
		registrationsStudentOnly.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			registrationsStudentOnly.POST("/register", registrationController.Register)
			registrationsStudentOnly.POST("/drop", registrationController.Drop)
			registrationsStudentOnly.GET("/my-courses", registrationController.MyCourses)
		}

		registrationsFacultyProtected := registrations.Group("")
		registrationsFacultyProtected.Use(authMiddleware.RoleRequired(string(models.RoleFaculty)))
		{
			registrationsFacultyProtected.GET("/all", registrationController.All)
		}
	}
}
