package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-diet/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-diet/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

const (
	ownerPassword = "correct horse battery"
	testSecret    = "handler-test-secret-handler-test-secret"
)

var (
	ownerOnce sync.Once
	owner     *domain.OwnerCredential
)

func testOwner(t *testing.T) *domain.OwnerCredential {
	t.Helper()
	ownerOnce.Do(func() {
		var err error
		owner, err = domain.NewOwnerCredential(ownerPassword)
		if err != nil {
			panic(err)
		}
	})
	return owner
}

// fixedNow is a Wednesday.
var fixedNow = time.Date(2024, time.July, 24, 10, 0, 0, 0, time.UTC)

type stubExtractor struct {
	meals []domain.ExtractedMeal
	err   error
	calls int
	mime  string
}

func (s *stubExtractor) Extract(ctx context.Context, file []byte, mimeType string) ([]domain.ExtractedMeal, error) {
	s.calls++
	s.mime = mimeType
	return s.meals, s.err
}

type testEnv struct {
	router *gin.Engine
	store  *repository.InMemoryStore
	token  string
}

type envOptions struct {
	capacity  int
	extractor domain.MealExtractor
}

func setupEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewInMemoryStore(opts.capacity)
	repo := repository.NewStateRepository(store, nil)

	ws := services.NewWorkspace(repo, time.UTC)
	ws.SetClock(func() time.Time { return fixedNow })

	tokens := services.NewTokenService(testSecret, "kanso-diet-test", time.Hour)
	diary := services.NewDiaryService(ws, nil)
	meals := services.NewMealService(ws, nil, nil)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(services.NewAuthService(testOwner(t), tokens)),
		DayHandler:      adapterHTTP.NewDayHandler(diary, time.UTC),
		MealHandler:     adapterHTTP.NewMealHandler(meals, diary),
		HistoryHandler:  adapterHTTP.NewHistoryHandler(services.NewHistoryService(ws)),
		SettingsHandler: adapterHTTP.NewSettingsHandler(services.NewSettingsService(ws)),
		StatsHandler:    adapterHTTP.NewStatsHandler(services.NewStatsService(ws), time.UTC),
		ImportHandler:   adapterHTTP.NewImportHandler(services.NewImportService(opts.extractor, nil, meals, nil)),
		TokenService:    tokens,
		StartTime:       fixedNow,
	})

	token, err := tokens.GenerateToken(domain.OwnerSubject)
	require.NoError(t, err)

	return &testEnv{router: router, store: store, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// createMeal stores a library meal and returns its id.
func (e *testEnv) createMeal(t *testing.T, body map[string]any) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/meals", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.MealProfile](t, w).ID
}

func oatsBody() map[string]any {
	return map[string]any{
		"name":              "Oats",
		"calories_per_100g": 380,
		"protein_per_100g":  13,
		"carbs_per_100g":    60,
		"fat_per_100g":      7,
		"default_weight":    80,
		"category":          "Breakfast",
		"image_url":         "data:image/jpeg;base64,AAAA",
		"is_main_meal":      true,
	}
}
