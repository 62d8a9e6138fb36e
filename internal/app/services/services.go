package services

// Services defined in this package:
// - CourseService: CRUD over the in-memory course collection
