package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studydesk/internal/database"
	"studydesk/internal/models"
	"studydesk/internal/planner"
)

func newTestServer(t *testing.T, opts ...Option) (*HTTPServer, *database.DB) {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHTTPServer(db, planner.New(planner.DefaultWindows()), &logger, opts...), db
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCoursesEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/api/courses", map[string]any{
		"name": "Calculus", "code": "MATH201",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Greater(t, created.ID, int64(0))

	rec = doJSON(t, mux, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Courses []models.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Courses, 1)
	assert.Equal(t, "Calculus", list.Courses[0].Name)

	rec = doJSON(t, mux, http.MethodDelete, "/api/courses/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/courses", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPatch, "/api/courses", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseActivitiesEndpoint(t *testing.T) {
	s, db := newTestServer(t)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/api/activities/parse", map[string]any{
		"text": "I go to the gym on Monday and Wednesday at 6pm for 1 hour",
		"save": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 2)
	assert.Equal(t, 2, resp.Saved)

	for i, day := range []int{1, 3} {
		a := resp.Activities[i]
		assert.Equal(t, "Gym", a.Title)
		assert.Equal(t, day, a.DayOfWeek)
		assert.Equal(t, "18:00", a.StartTime)
		assert.Equal(t, "19:00", a.EndTime)
		assert.Equal(t, models.CategoryFitness, a.Category)
	}

	stored, err := db.ListActivities(t.Context())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestParseDoesNotSaveIncomplete(t *testing.T) {
	s, db := newTestServer(t)
	mux := s.Routes()

	// No day and no time: parsed but never persisted.
	rec := doJSON(t, mux, http.MethodPost, "/api/activities/parse", map[string]any{
		"text": "I like reading for fun",
		"save": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Saved)

	stored, err := db.ListActivities(t.Context())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateActivityRejectsIncomplete(t *testing.T) {
	s, _ := newTestServer(t)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPost, "/api/activities", map[string]any{
		"title": "Gym", "day_of_week": 1, "start_time": "18:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedCourseWithWork(t *testing.T, db *database.DB) int64 {
	t.Helper()
	ctx := t.Context()
	courseID, err := db.CreateCourse(ctx, &models.Course{Name: "Calculus"})
	require.NoError(t, err)
	_, err = db.CreateAssignment(ctx, &models.Assignment{
		CourseID: courseID, Title: "Problem set", DueDate: time.Now().Add(48 * time.Hour),
		EstimatedHours: 4,
	})
	require.NoError(t, err)
	return courseID
}

func TestGenerateAndLatestPlan(t *testing.T) {
	s, db := newTestServer(t)
	mux := s.Routes()
	seedCourseWithWork(t, db)

	rec := doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var generated PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	assert.NotEmpty(t, generated.Token)
	require.NotNil(t, generated.Plan)
	// 6h baseline + half of 4 estimated hours.
	assert.InDelta(t, 8.0, generated.Plan.StudyHours.Recommended, 0.001)
	assert.InDelta(t, 8.0, generated.Plan.StudyHours.Allocated, 0.001)
	assert.NotEmpty(t, generated.Plan.StudyBlocks)

	rec = doJSON(t, mux, http.MethodGet, "/api/planner/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, generated.Token, latest.Token)
}

func TestLatestPlanEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Routes(), http.MethodGet, "/api/planner/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestPlanServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s, db := newTestServer(t, WithRedisCache(client, time.Minute))
	mux := s.Routes()
	seedCourseWithWork(t, db)

	rec := doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/planner/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mr.Exists(latestPlanCacheKey))

	// Poison the cached copy to prove the next read skips the database.
	var cached PlanResponse
	raw, err := mr.Get(latestPlanCacheKey)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	cached.Token = "cached-token"
	poisoned, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, mr.Set(latestPlanCacheKey, string(poisoned)))

	rec = doJSON(t, mux, http.MethodGet, "/api/planner/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cached-token", resp.Token)

	// Regeneration invalidates the cache.
	rec = doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, mr.Exists(latestPlanCacheKey))
}

func TestGenerateRateLimited(t *testing.T) {
	s, db := newTestServer(t, WithGenerateLimit(0.001, 1))
	mux := s.Routes()
	seedCourseWithWork(t, db)

	rec := doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	s, db := newTestServer(t)
	mux := s.Routes()
	ctx := t.Context()

	courseID := seedCourseWithWork(t, db)
	_, err := db.CreateTask(ctx, &models.Task{Title: "Buy textbook"})
	require.NoError(t, err)
	_, err = db.CreateExam(ctx, &models.Exam{
		CourseID: courseID, Title: "Midterm", ExamDate: time.Now().Add(5 * 24 * time.Hour),
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Courses)
	assert.Equal(t, 1, stats.PendingAssignments)
	assert.Equal(t, 1, stats.DueThisWeek)
	assert.Equal(t, 1, stats.PendingTasks)
	assert.Equal(t, 1, stats.UpcomingExams)
}

func TestSettingsRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodPut, "/api/settings", map[string]string{
		"theme": "dark", "week_starts": "sunday",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "dark", settings["theme"])
	assert.Equal(t, "sunday", settings["week_starts"])
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	mux := s.Routes()

	rec := doJSON(t, mux, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlanExport(t *testing.T) {
	s, db := newTestServer(t)
	mux := s.Routes()
	seedCourseWithWork(t, db)

	rec := doJSON(t, mux, http.MethodPost, "/api/planner/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/planner/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}
