package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const validToken = "valid-token"

var testUserID = primitive.NewObjectID()

// Stubs embed the service interface; calling a method without a stub func panics.

type stubAuthService struct {
	service.AuthService
	register func(email, password, confirm string) (*domain.User, error)
	login    func(email, password string) (string, *domain.User, error)
	update   func(userID primitive.ObjectID, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(_ context.Context, email, password, confirm string) (*domain.User, error) {
	return s.register(email, password, confirm)
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	return s.login(email, password)
}

func (s *stubAuthService) UpdateCredentials(_ context.Context, userID primitive.ObjectID, email, password string) (*domain.User, error) {
	return s.update(userID, email, password)
}

func (s *stubAuthService) ValidateToken(token string) (primitive.ObjectID, error) {
	if token != validToken {
		return primitive.NilObjectID, service.ErrInvalidToken
	}
	return testUserID, nil
}

type stubProfileService struct {
	service.ProfileService
	get    func(userID primitive.ObjectID) (*domain.Profile, error)
	update func(userID primitive.ObjectID, in service.ProfileUpdate) (*domain.Profile, error)
	upload func(userID primitive.ObjectID, contentType string) (*service.ImageUploadURL, error)
	image  func(userID primitive.ObjectID) (string, error)
}

func (s *stubProfileService) GetProfile(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	return s.get(userID)
}

func (s *stubProfileService) UpdateProfile(_ context.Context, userID primitive.ObjectID, in service.ProfileUpdate) (*domain.Profile, error) {
	return s.update(userID, in)
}

func (s *stubProfileService) RequestImageUpload(_ context.Context, userID primitive.ObjectID, contentType string) (*service.ImageUploadURL, error) {
	return s.upload(userID, contentType)
}

func (s *stubProfileService) GetImageURL(_ context.Context, userID primitive.ObjectID) (string, error) {
	return s.image(userID)
}

type stubGoalService struct {
	service.GoalService
	getDay    func(date time.Time) (*domain.DailyGoalRecord, error)
	updateDay func(date time.Time, flags service.GoalFlags) (*domain.DailyGoalRecord, error)
	addGoal   func(name string) (*domain.GoalBoard, error)
	toggle    func(name string) (*domain.GoalBoard, error)
}

func (s *stubGoalService) GetDay(_ context.Context, _ primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error) {
	return s.getDay(date)
}

func (s *stubGoalService) UpdateDay(_ context.Context, _ primitive.ObjectID, date time.Time, flags service.GoalFlags) (*domain.DailyGoalRecord, error) {
	return s.updateDay(date, flags)
}

func (s *stubGoalService) AddActiveGoal(_ context.Context, _ primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	return s.addGoal(name)
}

func (s *stubGoalService) ToggleGoal(_ context.Context, _ primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	return s.toggle(name)
}

type stubRoutineService struct {
	service.RoutineService
	save func(name string) (*domain.SavedRoutine, error)
}

func (s *stubRoutineService) Catalog() []domain.Routine {
	return domain.RoutineCatalog()
}

func (s *stubRoutineService) SaveRoutine(_ context.Context, _ primitive.ObjectID, name string) (*domain.SavedRoutine, error) {
	return s.save(name)
}

type stubDashboardService struct {
	service.DashboardService
	get func(date time.Time) (*service.Dashboard, error)
}

func (s *stubDashboardService) GetDashboard(_ context.Context, _ primitive.ObjectID, date time.Time) (*service.Dashboard, error) {
	return s.get(date)
}

type testServices struct {
	auth      *stubAuthService
	profile   *stubProfileService
	goal      *stubGoalService
	routine   *stubRoutineService
	dashboard *stubDashboardService
}

func newTestRouter(s testServices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if s.auth == nil {
		s.auth = &stubAuthService{}
	}
	if s.profile == nil {
		s.profile = &stubProfileService{}
	}
	if s.goal == nil {
		s.goal = &stubGoalService{}
	}
	if s.routine == nil {
		s.routine = &stubRoutineService{}
	}
	if s.dashboard == nil {
		s.dashboard = &stubDashboardService{}
	}
	router := gin.New()
	SetupRoutes(router, s.auth, s.profile, s.goal, s.routine, s.dashboard)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func newRequest(method, path, authHeader string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
