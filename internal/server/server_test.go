package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandler(t *testing.T, mutate ...func(*config.Config)) http.Handler {
	t.Helper()
	cfg := config.Default()
	for _, fn := range mutate {
		fn(cfg)
	}
	srv, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("building server: %v", err)
	}
	return srv.Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeCourse(w *httptest.ResponseRecorder) models.Course {
	var course models.Course
	So(json.Unmarshal(w.Body.Bytes(), &course), ShouldBeNil)
	return course
}

func decodeCourses(w *httptest.ResponseRecorder) []models.Course {
	var courses []models.Course
	So(json.Unmarshal(w.Body.Bytes(), &courses), ShouldBeNil)
	return courses
}

const notFoundMsg = "Course with given id not found."

func TestCourseAPI(t *testing.T) {
	Convey("Given a server seeded with courses 1, 2 and 3", t, func() {
		h := newHandler(t)

		Convey("GET / greets", func() {
			w := do(h, http.MethodGet, "/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "Hello World")
		})

		Convey("GET /api/courses lists every course in order", func() {
			w := do(h, http.MethodGet, "/api/courses", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Body.String(), ShouldEqual, `[{"id":1,"name":"Course1"},{"id":2,"name":"Course2"},{"id":3,"name":"Course3"}]`)
		})

		Convey("GET /api/courses/2 returns the course", func() {
			w := do(h, http.MethodGet, "/api/courses/2", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 2, Name: "Course2"})
		})

		Convey("GET on an unknown or non-numeric id is 404", func() {
			for _, target := range []string{"/api/courses/42", "/api/courses/abc", "/api/courses/1.5", "/api/courses/1_0", "/api/courses/0x1p1"} {
				w := do(h, http.MethodGet, target, "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldEqual, notFoundMsg)
			}
		})

		Convey("POST with a valid name creates course count + 1", func() {
			w := do(h, http.MethodPost, "/api/courses", `{"name":"Course4"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 4, Name: "Course4"})

			w = do(h, http.MethodPost, "/api/courses", `{"name":"Course5"}`)
			So(decodeCourse(w).ID, ShouldEqual, 5)

			So(decodeCourses(do(h, http.MethodGet, "/api/courses", "")), ShouldHaveLength, 5)
		})

		Convey("Hex and float spellings of an id find the course", func() {
			for _, target := range []string{"/api/courses/0x2", "/api/courses/2.0", "/api/courses/2e0"} {
				w := do(h, http.MethodGet, target, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeCourse(w).ID, ShouldEqual, 2)
			}
		})

		Convey("The first unknown key in body order is reported", func() {
			w := do(h, http.MethodPost, "/api/courses", `{"name":"Course4","zeta":1,"alpha":2}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldEqual, `"zeta" is not allowed`)
		})

		Convey("POST with an invalid payload is 400 and leaves the store alone", func() {
			cases := map[string]string{
				`{"name":"ab"}`:   `"name" length must be at least 3 characters long`,
				`{}`:              `"name" is required`,
				`{"name":42}`:     `"name" must be a string`,
				`{"title":"abc"}`: `"name" is required`,
			}
			for body, msg := range cases {
				w := do(h, http.MethodPost, "/api/courses", body)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldEqual, msg)
			}

			w := do(h, http.MethodPost, "/api/courses", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldEqual, `"name" is required`)

			So(decodeCourses(do(h, http.MethodGet, "/api/courses", "")), ShouldHaveLength, 3)
		})

		Convey("PUT with a valid name renames and keeps the id", func() {
			w := do(h, http.MethodPut, "/api/courses/2", `{"name":"Algorithms"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 2, Name: "Algorithms"})

			w = do(h, http.MethodGet, "/api/courses/2", "")
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 2, Name: "Algorithms"})
		})

		Convey("PUT with an invalid name is 400 and changes nothing", func() {
			w := do(h, http.MethodPut, "/api/courses/2", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldEqual, `"name" length must be at least 3 characters long`)

			w = do(h, http.MethodGet, "/api/courses/2", "")
			So(decodeCourse(w).Name, ShouldEqual, "Course2")
		})

		Convey("PUT on a missing id is 404 even with an invalid body", func() {
			w := do(h, http.MethodPut, "/api/courses/42", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldEqual, notFoundMsg)

			w = do(h, http.MethodPut, "/api/courses/42", `{"name":"Valid"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeCourses(do(h, http.MethodGet, "/api/courses", "")), ShouldHaveLength, 3)
		})

		Convey("DELETE returns the removed course and a later GET is 404", func() {
			w := do(h, http.MethodDelete, "/api/courses/1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 1, Name: "Course1"})

			w = do(h, http.MethodGet, "/api/courses/1", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldEqual, notFoundMsg)

			w = do(h, http.MethodDelete, "/api/courses/1", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("DELETE on a missing id is 404 and the store is unchanged", func() {
			w := do(h, http.MethodDelete, "/api/courses/99", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeCourses(do(h, http.MethodGet, "/api/courses", "")), ShouldHaveLength, 3)
		})

		Convey("Ids are not reused after a delete", func() {
			do(h, http.MethodDelete, "/api/courses/3", "")
			w := do(h, http.MethodPost, "/api/courses", `{"name":"Course4"}`)
			So(decodeCourse(w).ID, ShouldEqual, 4)
		})

		Convey("The full scenario runs end to end", func() {
			w := do(h, http.MethodGet, "/api/courses/2", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 2, Name: "Course2"})

			w = do(h, http.MethodPost, "/api/courses", `{"name":"Course4"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 4, Name: "Course4"})

			w = do(h, http.MethodDelete, "/api/courses/1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 1, Name: "Course1"})

			So(do(h, http.MethodGet, "/api/courses/1", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPostsArchive(t *testing.T) {
	Convey("Given a server", t, func() {
		h := newHandler(t)

		Convey("Path and query values are echoed verbatim", func() {
			w := do(h, http.MethodGet, "/api/posts/2024/05?sortBy=name", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "Year: 2024, Month: 05, SortBy: name")
		})

		Convey("A missing sortBy reads undefined", func() {
			w := do(h, http.MethodGet, "/api/posts/2018/1", "")
			So(w.Body.String(), ShouldEqual, "Year: 2018, Month: 1, SortBy: undefined")
		})

		Convey("Repeated sortBy values are joined", func() {
			w := do(h, http.MethodGet, "/api/posts/2024/05?sortBy=name&sortBy=date", "")
			So(w.Body.String(), ShouldEqual, "Year: 2024, Month: 05, SortBy: name,date")
		})
	})
}

func TestServerSurface(t *testing.T) {
	Convey("Given a server with every optional surface enabled", t, func() {
		h := newHandler(t)

		Convey("Unknown routes answer in plain text", func() {
			w := do(h, http.MethodGet, "/api/students", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldEqual, "Cannot GET /api/students")
		})

		Convey("A trailing slash is ignored", func() {
			w := do(h, http.MethodGet, "/api/courses/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourses(w), ShouldHaveLength, 3)

			w = do(h, http.MethodGet, "/api/courses/2/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w), ShouldResemble, models.Course{ID: 2, Name: "Course2"})

			w = do(h, http.MethodPost, "/api/courses/", `{"name":"Course4"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeCourse(w).ID, ShouldEqual, 4)

			w = do(h, http.MethodGet, "/nope/", "")
			So(w.Body.String(), ShouldEqual, "Cannot GET /nope/")
		})

		Convey("HEAD is answered by the GET routes", func() {
			So(do(h, http.MethodHead, "/", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodHead, "/api/courses", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodHead, "/api/courses/2", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodHead, "/api/courses/42", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Routes match case-sensitively", func() {
			w := do(h, http.MethodGet, "/API/courses", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldEqual, "Cannot GET /API/courses")
		})

		Convey("Every response carries a request id", func() {
			w := do(h, http.MethodGet, "/api/courses/42", "")
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("The health endpoint answers", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, `{"status":"ok"}`)
		})

		Convey("CORS headers are set for cross-origin callers", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
			req.Header.Set("Origin", "http://frontend.test")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})

		Convey("Metrics count requests per route", func() {
			do(h, http.MethodGet, "/api/courses", "")
			do(h, http.MethodPost, "/api/courses", `{"name":"x"}`)

			body := do(h, http.MethodGet, "/metrics", "").Body.String()
			So(body, ShouldContainSubstring, `coursehub_http_requests_total{method="GET",route="/api/courses",status="200"} 1`)
			So(body, ShouldContainSubstring, `coursehub_http_requests_total{method="POST",route="/api/courses",status="400"} 1`)
			So(body, ShouldContainSubstring, "coursehub_courses_validation_failures_total 1")
			So(body, ShouldContainSubstring, "coursehub_courses_stored 3")
		})

		Convey("The OpenAPI document is served", func() {
			w := do(h, http.MethodGet, "/swagger/doc.json", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "/api/courses/{id}")
		})
	})

	Convey("Given a server with optional surfaces and seeding disabled", t, func() {
		h := newHandler(t, func(cfg *config.Config) {
			cfg.Metrics.Enabled = false
			cfg.Swagger.Enabled = false
			cfg.Store.Seed = false
		})

		Convey("The store starts empty", func() {
			So(do(h, http.MethodGet, "/api/courses", "").Body.String(), ShouldEqual, "[]")
		})

		Convey("Metrics and docs are not routed", func() {
			So(do(h, http.MethodGet, "/metrics", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(h, http.MethodGet, "/swagger/doc.json", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Validation still works without metrics", func() {
			w := do(h, http.MethodPost, "/api/courses", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
