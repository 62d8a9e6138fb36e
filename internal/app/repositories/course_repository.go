package repositories

import (
	"context"
	"sync"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// ICourseRepository defines the operations the course service needs from storage
type ICourseRepository interface {
	FindByID(ctx context.Context, id int64) (models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, name string) (models.Course, error)
	Update(ctx context.Context, id int64, name string) (models.Course, error)
	Delete(ctx context.Context, id int64) (models.Course, error)
	Count(ctx context.Context) (int, error)
}

// CourseRepository keeps courses in process memory, in insertion order.
// Records are handed out by value so callers never alias the backing slice.
type CourseRepository struct {
	mu      sync.RWMutex
	courses []models.Course
	lastID  int64
}

// NewCourseRepository creates an empty CourseRepository
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		courses: make([]models.Course, 0),
	}
}

// indexOf returns the slice position of id, or -1. Caller holds mu.
func (r *CourseRepository) indexOf(id int64) int {
	for i := range r.courses {
		if r.courses[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByID retrieves a course by ID
func (r *CourseRepository) FindByID(_ context.Context, id int64) (models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Course{}, apperrors.ErrCourseNotFound
	}
	return r.courses[i], nil
}

// List retrieves all courses in insertion order
func (r *CourseRepository) List(_ context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]models.Course, len(r.courses))
	copy(courses, r.courses)
	return courses, nil
}

// Create appends a new course and returns it with its assigned ID.
// IDs grow monotonically and are never handed out twice, even after deletes.
func (r *CourseRepository) Create(_ context.Context, name string) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	course := models.Course{ID: r.lastID, Name: name}
	r.courses = append(r.courses, course)
	return course, nil
}

// Insert stores a course with a caller-chosen ID. Used for seeding.
func (r *CourseRepository) Insert(_ context.Context, course models.Course) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if course.ID <= 0 {
		return models.Course{}, apperrors.NewValidationError("course id must be positive")
	}
	if r.indexOf(course.ID) >= 0 {
		return models.Course{}, apperrors.ErrCourseAlreadyExists
	}
	if course.ID > r.lastID {
		r.lastID = course.ID
	}
	r.courses = append(r.courses, course)
	return course, nil
}

// Update renames the course in place
func (r *CourseRepository) Update(_ context.Context, id int64, name string) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Course{}, apperrors.ErrCourseNotFound
	}
	r.courses[i].Name = name
	return r.courses[i], nil
}

// Delete removes a course and returns the removed record
func (r *CourseRepository) Delete(_ context.Context, id int64) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Course{}, apperrors.ErrCourseNotFound
	}
	removed := r.courses[i]
	r.courses = append(r.courses[:i], r.courses[i+1:]...)
	return removed, nil
}

// Count returns the number of stored courses
func (r *CourseRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.courses), nil
}
