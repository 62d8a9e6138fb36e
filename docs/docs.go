// Package docs holds the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["home"],
                "summary": "Greeting",
                "responses": {
                    "200": {"description": "Hello World", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/courses": {
            "get": {
                "description": "Returns every course in insertion order",
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Course"}}
                    }
                }
            },
            "post": {
                "description": "Validates the payload and appends a new course",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Create a course",
                "parameters": [
                    {
                        "description": "Course information",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CourseRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Course"}},
                    "400": {"description": "Validation message", "schema": {"type": "string"}}
                }
            }
        },
        "/api/courses/{id}": {
            "get": {
                "description": "Retrieves a single course by its ID",
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get a course",
                "parameters": [
                    {"type": "integer", "description": "Course ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Course"}},
                    "404": {"description": "Course with given id not found.", "schema": {"type": "string"}}
                }
            },
            "put": {
                "description": "Replaces the name of an existing course",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Update a course",
                "parameters": [
                    {"type": "integer", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Course information",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CourseRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Course"}},
                    "400": {"description": "Validation message", "schema": {"type": "string"}},
                    "404": {"description": "Course with given id not found.", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Removes a course and returns the removed record",
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Delete a course",
                "parameters": [
                    {"type": "integer", "description": "Course ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Course"}},
                    "404": {"description": "Course with given id not found.", "schema": {"type": "string"}}
                }
            }
        },
        "/api/posts/{year}/{month}": {
            "get": {
                "description": "Echoes path and query parameters",
                "produces": ["text/plain"],
                "tags": ["posts"],
                "summary": "Posts archive",
                "parameters": [
                    {"type": "string", "description": "Year", "name": "year", "in": "path", "required": true},
                    {"type": "string", "description": "Month", "name": "month", "in": "path", "required": true},
                    {"type": "string", "description": "Sort key", "name": "sortBy", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Year: 2024, Month: 05, SortBy: name", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CourseRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "minLength": 3, "example": "Course4"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "models.Course": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Course1"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Course API",
	Description:      "In-memory course catalogue with a posts archive demo route",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
