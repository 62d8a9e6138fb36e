package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (models.Course, error)
	DeleteCourse(ctx context.Context, id int64) (models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger.With().Str("component", "course_service").Logger(),
	}
}

// GetAllCourses retrieves all courses
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return models.Course{}, apperrors.ErrCourseNotFound
		}
		return models.Course{}, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CreateCourse stores a new course built from an already validated request
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (models.Course, error) {
	course, err := s.courseRepo.Create(ctx, req.Name)
	if err != nil {
		return models.Course{}, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// UpdateCourse renames an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (models.Course, error) {
	course, err := s.courseRepo.Update(ctx, id, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return models.Course{}, apperrors.ErrCourseNotFound
		}
		return models.Course{}, fmt.Errorf("error updating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course updated")
	return course, nil
}

// DeleteCourse removes a course and returns what was removed
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (models.Course, error) {
	course, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return models.Course{}, apperrors.ErrCourseNotFound
		}
		return models.Course{}, fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Msg("Course deleted")
	return course, nil
}
