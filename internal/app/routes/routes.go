package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/middleware"
)

// SetupRouter configures all application routes. validateCourse guards the
// routes that accept a course body.
func SetupRouter(
	router *gin.Engine,
	homeController *controllers.HomeController,
	courseController *controllers.CourseController,
	postController *controllers.PostController,
	validateCourse gin.HandlerFunc,
) {
	getOrHead(router, "/", homeController.Index)
	getOrHead(router, "/healthz", homeController.Health)

	api := router.Group("/api")

	// Course routes. Lookup runs before validation so a missing course
	// answers 404 whatever the body holds.
	courses := api.Group("/courses")
	{
		getOrHead(courses, "", courseController.GetAllCourses)
		getOrHead(courses, "/:id", courseController.LoadCourse, courseController.GetCourseByID)
		courses.POST("", validateCourse, courseController.CreateCourse)
		courses.PUT("/:id", courseController.LoadCourse, validateCourse, courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.LoadCourse, courseController.DeleteCourse)
	}

	getOrHead(api, "/posts/:year/:month", postController.GetPostsArchive)

	router.NoRoute(middleware.NotFound())
}

// getOrHead registers handlers for GET and answers HEAD with the same chain.
func getOrHead(routes gin.IRoutes, path string, handlers ...gin.HandlerFunc) {
	routes.GET(path, handlers...)
	routes.HEAD(path, handlers...)
}
