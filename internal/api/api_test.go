package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/api"
	"alcyxob/coaching-app/internal/dashboard"
	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository/memory"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type server struct {
	t      *testing.T
	router *gin.Engine
}

// newServer wires the full stack on memory repositories with media storage disabled.
func newServer(t *testing.T) *server {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	plans := memory.NewTrainingPlanRepository(store)
	templates := memory.NewTemplateRepository(store)
	m, reg := metrics.NewTestManagerAndRegistry()
	now := time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

	svc := api.Services{
		Auth:      service.NewAuthService(users, testSecret, time.Hour, plantree.NewID),
		Plans:     service.NewPlanService(plans, users, templates, nil, m, plantree.NewID),
		Progress:  service.NewProgressService(plans, nil, m, time.Minute),
		Templates: service.NewTemplateService(templates, plans, users, m, plantree.NewID),
		Dashboard: service.NewDashboardService(plans, users, time.UTC, func() time.Time { return now }),
	}
	require.NoError(t, svc.Templates.SeedPredefined(context.Background()))

	router := gin.New()
	api.SetupRoutes(router, testSecret, svc, m, reg)
	return &server{t: t, router: router}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) form(method, path, token string, values url.Values) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type account struct {
	token string
	user  api.UserResponse
}

func (s *server) signUp(name, email string, role domain.Role, coachID string) account {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
		FullName: name,
		Email:    email,
		Password: "password123",
		Role:     role,
		CoachID:  coachID,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Email: email, Password: "password123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[api.LoginResponse](s.t, w)
	return account{token: resp.Token, user: resp.User}
}

func (s *server) coachAndAthlete() (account, account) {
	s.t.Helper()
	coach := s.signUp("Coach Carter", "coach@test.io", domain.RoleCoach, "")
	athlete := s.signUp("Alex Athlete", "alex@test.io", domain.RoleAthlete, coach.user.CoachID)
	return coach, athlete
}

const planBody = `{
	"athleteId": %q,
	"name": "Block A",
	"startDate": "2025-03-10",
	"endDate": "2025-04-06",
	"sessions": [{
		"sessionName": "Day 1",
		"date": "2025-03-13",
		"exercises": [{"name": "Squat", "sets": 3, "reps": 5, "weight": 100}]
	}]
}`

func (s *server) createPlan(coach, athlete account) *domain.TrainingPlan {
	s.t.Helper()
	body := json.RawMessage(strings.ReplaceAll(planBody, "%q", `"`+athlete.user.ID+`"`))
	w := s.do(http.MethodPost, "/api/v1/coach/plans", coach.token, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*domain.TrainingPlan](s.t, w)
}

func TestPing(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	s.do(http.MethodGet, "/ping", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "coaching_test_server_request")
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()

	assert.True(t, strings.HasPrefix(coach.user.CoachID, "COACH-"), coach.user.CoachID)
	assert.Equal(t, coach.user.CoachID, athlete.user.CoachID)

	w := s.do(http.MethodGet, "/api/v1/me", athlete.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[api.UserResponse](t, w)
	assert.Equal(t, "Alex Athlete", me.FullName)
	assert.Equal(t, domain.RoleAthlete, me.Role)

	w = s.do(http.MethodGet, "/api/v1/coach/athletes", coach.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	athletes := decode[[]api.UserResponse](t, w)
	require.Len(t, athletes, 1)
	assert.Equal(t, athlete.user.ID, athletes[0].ID)

	t.Run("duplicate email", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
			FullName: "Again", Email: "coach@test.io", Password: "password123", Role: domain.RoleCoach,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown coach code", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
			FullName: "Lost", Email: "lost@test.io", Password: "password123", Role: domain.RoleAthlete, CoachID: "COACH-ZZZZZZ",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Email: "coach@test.io", Password: "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()

	w := s.do(http.MethodGet, "/api/v1/coach/plans", athlete.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/athlete/plans", coach.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlanProgressFlow(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()

	plan := s.createPlan(coach, athlete)
	require.Len(t, plan.Sessions, 1)
	session := plan.Sessions[0]
	require.Len(t, session.Exercises, 1)
	exercise := session.Exercises[0]
	assert.True(t, strings.HasPrefix(session.SessionID, "S-"))
	assert.True(t, strings.HasPrefix(exercise.ExerciseID, "E-"))
	require.Len(t, exercise.PerformedSets, 3)

	planPath := "/api/v1/plans/" + plan.ID.Hex()
	exercisePath := "/api/v1/athlete/plans/" + plan.ID.Hex() + "/sessions/" + session.SessionID + "/exercises/" + exercise.ExerciseID

	w := s.do(http.MethodGet, planPath, athlete.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/athlete/plans", athlete.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]*domain.TrainingPlan](t, w), 1)

	// Log one set, with an unknown id that is skipped.
	w = s.do(http.MethodPut, exercisePath+"/sets", athlete.token, json.RawMessage(`{"sets": [
		{"setId": "`+exercise.PerformedSets[0].SetID+`", "completed": true, "repsPerformed": 5, "loadUsed": 100},
		{"setId": "PS-NOPE00", "completed": true}
	]}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[*domain.TrainingPlan](t, w)
	assert.True(t, updated.Sessions[0].Exercises[0].PerformedSets[0].Completed)
	assert.False(t, updated.Sessions[0].Exercises[0].Completed)

	// Form feedback completes the whole exercise and rolls the session up.
	w = s.form(http.MethodPost, exercisePath+"/feedback", athlete.token, url.Values{
		"completed":    {"true"},
		"athleteNotes": {"felt strong"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = decode[*domain.TrainingPlan](t, w)
	assert.True(t, updated.Sessions[0].Exercises[0].Completed)
	assert.True(t, updated.Sessions[0].Completed)
	require.NotNil(t, updated.Sessions[0].Exercises[0].AthleteNotes)
	assert.Equal(t, "felt strong", *updated.Sessions[0].Exercises[0].AthleteNotes)

	// JSON feedback with a string boolean reopens it.
	w = s.do(http.MethodPost, exercisePath+"/feedback", athlete.token, json.RawMessage(`{"completed": "false", "performanceComment": "left knee"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = decode[*domain.TrainingPlan](t, w)
	assert.False(t, updated.Sessions[0].Completed)
	require.NotNil(t, updated.Sessions[0].Exercises[0].PerformanceComment)
	assert.Equal(t, "felt strong", *updated.Sessions[0].Exercises[0].AthleteNotes)

	notesPath := "/api/v1/athlete/plans/" + plan.ID.Hex() + "/sessions/" + session.SessionID + "/notes"
	w = s.do(http.MethodPut, notesPath, athlete.token, gin.H{"sessionNotes": "short on time"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = decode[*domain.TrainingPlan](t, w)
	require.NotNil(t, updated.Sessions[0].SessionNotes)
	assert.Equal(t, "short on time", *updated.Sessions[0].SessionNotes)

	w = s.do(http.MethodPut, notesPath, athlete.token, gin.H{"sessionNotes": strings.Repeat("x", 1001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A coach edit against a stale version is rejected.
	stale := plan.Version
	w = s.do(http.MethodPatch, "/api/v1/coach/plans/"+plan.ID.Hex(), coach.token, gin.H{"version": stale, "name": "Block B"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, "/api/v1/coach/plans/"+plan.ID.Hex(), coach.token, gin.H{"name": "Block B"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = decode[*domain.TrainingPlan](t, w)
	assert.Equal(t, "Block B", updated.Name)
	logged := updated.Sessions[0].Exercises[0].PerformedSets[0]
	require.NotNil(t, logged.RepsPerformed, "progress survives a coach edit")
	assert.Equal(t, 5, *logged.RepsPerformed)
	require.NotNil(t, updated.Sessions[0].SessionNotes)

	w = s.do(http.MethodDelete, "/api/v1/coach/plans/"+plan.ID.Hex(), coach.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, planPath, coach.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressOnForeignPlanIsNotFound(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()
	other := s.signUp("Other Athlete", "other@test.io", domain.RoleAthlete, coach.user.CoachID)

	plan := s.createPlan(coach, athlete)
	session := plan.Sessions[0]
	path := "/api/v1/athlete/plans/" + plan.ID.Hex() + "/sessions/" + session.SessionID + "/exercises/" + session.Exercises[0].ExerciseID + "/feedback"

	w := s.do(http.MethodPost, path, other.token, gin.H{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), other.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/plans/not-an-id", athlete.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaDisabled(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()
	plan := s.createPlan(coach, athlete)
	session := plan.Sessions[0]

	path := "/api/v1/athlete/plans/" + plan.ID.Hex() + "/sessions/" + session.SessionID + "/exercises/" + session.Exercises[0].ExerciseID + "/media/upload-url"
	w := s.do(http.MethodPost, path, athlete.token, api.RequestUploadURLRequest{ContentType: "video/mp4"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())
}

func TestDashboard(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()
	s.createPlan(coach, athlete)

	w := s.do(http.MethodGet, "/api/v1/dashboard/"+coach.user.CoachID, coach.token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decode[dashboard.Dashboard](t, w)
	assert.Equal(t, 1, dash.Stats.TotalSessions)
	assert.Equal(t, 1, dash.Stats.ActivePlans)
	assert.Len(t, dash.WeeklyProgress, 7)
	require.Len(t, dash.UpcomingSessions, 1)
	assert.Equal(t, "Alex Athlete", dash.UpcomingSessions[0].AthleteName)

	w = s.do(http.MethodGet, "/api/v1/dashboard/COACH-ZZZZZZ", coach.token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/dashboard/"+coach.user.CoachID, athlete.token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTemplates(t *testing.T) {
	s := newServer(t)
	coach, athlete := s.coachAndAthlete()

	w := s.do(http.MethodGet, "/api/v1/coach/templates", coach.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	templates := decode[[]*domain.Template](t, w)
	require.Len(t, templates, 3)

	w = s.do(http.MethodPost, "/api/v1/coach/templates/"+templates[0].ID.Hex()+"/plans", coach.token, gin.H{
		"athleteId": athlete.user.ID,
		"startDate": "2025-03-17",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[*domain.TrainingPlan](t, w)
	assert.NotEmpty(t, plan.Sessions)
	assert.Equal(t, coach.user.CoachID, plan.CoachID)

	w = s.do(http.MethodDelete, "/api/v1/coach/templates/"+templates[0].ID.Hex(), coach.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "predefined templates stay")

	// Save the new plan as the coach's own template, then retire it.
	w = s.do(http.MethodPost, "/api/v1/coach/plans/"+plan.ID.Hex()+"/template", coach.token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	own := decode[*domain.Template](t, w)

	w = s.do(http.MethodDelete, "/api/v1/coach/templates/"+own.ID.Hex(), coach.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), coach.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[*domain.TrainingPlan](t, w).IsTemplate)
}
