package models

// Course represents a course record held by the course store.
type Course struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Course1"`
}
