package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursehub/internal/app/models"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// DefaultCourses is the catalogue a fresh process starts with
var DefaultCourses = []appModels.Course{
	{ID: 1, Name: "Course1"},
	{ID: 2, Name: "Course2"},
	{ID: 3, Name: "Course3"},
}

// CreateDefaultData inserts DefaultCourses, skipping any that already exist.
func CreateDefaultData(ctx context.Context, courseRepo *appRepos.CourseRepository, lgr zerolog.Logger) error {
	lgr.Info().Int("count", len(DefaultCourses)).Msg("Creating default courses...")
	var finalErr error // collect errors without stopping the loop

	for _, course := range DefaultCourses {
		_, err := courseRepo.Insert(ctx, course)
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			lgr.Debug().Int64("courseID", course.ID).Msg("Default course already present")
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Int64("courseID", course.ID).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
