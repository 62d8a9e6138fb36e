package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// courseKey is the context key LoadCourse stores the looked up course under
const courseKey = "course"

// maxExactID bounds ids given in float notation to integers a float64 holds exactly
const maxExactID = 1 << 53

var (
	errCourseNotLoaded  = errors.New("course not loaded: route is missing LoadCourse")
	errBodyNotValidated = errors.New("course body not validated: route is missing ValidateCourse")
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetAllCourses retrieves all courses
// @Summary List courses
// @Description Returns every course in insertion order
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /api/courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// LoadCourse looks up the course named by the :id path parameter and stores
// it on the context. It aborts with 404 when there is no such course, so
// handlers chained after it only ever see existing records.
func (c *CourseController) LoadCourse(ctx *gin.Context) {
	id, ok := parseCourseID(ctx.Param("id"))
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrCourseNotFound)
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Set(courseKey, course)
	ctx.Next()
}

// GetCourseByID returns the course loaded by LoadCourse
// @Summary Get a course
// @Description Retrieves a single course by its ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {string} string "Course with given id not found."
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, ok := loadedCourse(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errCourseNotLoaded)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Validates the payload and appends a new course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} models.Course
// @Failure 400 {string} string "Validation message"
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	req, ok := middleware.ValidatedCourse(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errBodyNotValidated)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// UpdateCourse renames the course loaded by LoadCourse
// @Summary Update a course
// @Description Replaces the name of an existing course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} models.Course
// @Failure 400 {string} string "Validation message"
// @Failure 404 {string} string "Course with given id not found."
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	course, ok := loadedCourse(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errCourseNotLoaded)
		return
	}

	req, ok := middleware.ValidatedCourse(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errBodyNotValidated)
		return
	}

	updated, err := c.courseService.UpdateCourse(ctx, course.ID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteCourse removes the course loaded by LoadCourse
// @Summary Delete a course
// @Description Removes a course and returns the removed record
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {string} string "Course with given id not found."
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	course, ok := loadedCourse(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errCourseNotLoaded)
		return
	}

	removed, err := c.courseService.DeleteCourse(ctx, course.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, removed)
}

func loadedCourse(ctx *gin.Context) (models.Course, bool) {
	value, exists := ctx.Get(courseKey)
	if !exists {
		return models.Course{}, false
	}
	course, ok := value.(models.Course)
	return course, ok
}

// radixPrefixes maps the unsigned integer prefixes numeric coercion accepts
var radixPrefixes = map[byte]int{
	'x': 16, 'X': 16,
	'o': 8, 'O': 8,
	'b': 2, 'B': 2,
}

// parseCourseID reads an id the way numeric coercion of a path segment
// would: surrounding whitespace is ignored, "2", "2.0", "2e0" and "0x2" all
// name course 2. Go-only forms such as "1_0" or "0x1p1" name no course.
func parseCourseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "_pP") {
		return 0, false
	}

	if len(raw) > 2 && raw[0] == '0' {
		if base, ok := radixPrefixes[raw[1]]; ok {
			digits := raw[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return 0, false
			}
			id, err := strconv.ParseInt(digits, base, 64)
			if err != nil || id <= 0 || id > maxExactID {
				return 0, false
			}
			return id, true
		}
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, id > 0 && id <= maxExactID
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f <= 0 || f > maxExactID {
		return 0, false
	}
	return int64(f), true
}
