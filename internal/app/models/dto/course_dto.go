package dto

// CourseRequest represents the body accepted when creating or renaming a course
type CourseRequest struct {
	Name string `json:"name" validate:"required,utf16min=3" example:"Course4"`
}

// PostArchiveURI holds the path parameters of the posts archive route
type PostArchiveURI struct {
	Year  string `uri:"year" binding:"required"`
	Month string `uri:"month" binding:"required"`
}

// PostArchiveQuery holds the query parameters of the posts archive route
type PostArchiveQuery struct {
	SortBy []string `form:"sortBy"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
