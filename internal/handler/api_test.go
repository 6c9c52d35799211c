package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pushup-club/internal/holiday"
	"pushup-club/internal/middleware"
	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T, admins []string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Member{},
		&model.CompletionRecord{},
		&model.StockHolding{},
		&model.CashBalance{},
		&model.SiteConfig{},
		&model.Event{},
		&model.EventParticipant{},
	))

	cal := holiday.Korea()
	workdays := service.NewWorkdays(cal)
	penaltySvc := service.NewPenaltyService(db, workdays, 10000)
	completionSvc := service.NewCompletionService(db)
	rankingSvc := service.NewRankingService(db, penaltySvc)
	authSvc := service.NewAuthService(db, admins)
	adminSvc := service.NewAdminService(db)
	eventSvc := service.NewEventService(db)

	keys := service.NewKeyChain(service.StoreKey{DB: db, Key: service.FinnhubKeyConfig})
	finnhub := service.NewFinnhubClient("http://127.0.0.1:0")
	quotes := service.NewQuoteCache(finnhub, keys)
	fx := service.NewFXCache(service.NewFXClient("http://127.0.0.1:0"), 1350)
	assetSvc := service.NewAssetService(db, quotes, fx)

	authH := NewAuthHandler(authSvc)
	calH := NewCalendarHandler(db, cal, penaltySvc, completionSvc)
	rankH := NewRankingHandler(rankingSvc)
	assetH := NewAssetHandler(assetSvc, quotes)
	adminH := NewAdminHandler(adminSvc, keys, finnhub)
	eventH := NewEventHandler(eventSvc, adminSvc)

	r := gin.New()
	api := r.Group("/api", middleware.Identity())
	api.POST("/login", authH.Login)
	api.GET("/calendar/:year/:month", calH.Month)
	api.POST("/toggle", calH.Toggle)
	api.GET("/ranking", rankH.Monthly)
	api.GET("/available-months", calH.AvailableMonths)
	api.GET("/assets", assetH.Snapshot)
	api.GET("/stock-price/:symbol", assetH.StockPrice)
	api.GET("/events", eventH.List)
	api.POST("/events/:id/join", eventH.Join)

	admin := api.Group("/admin")
	admin.POST("/stock", adminH.CreateStock)
	admin.PUT("/stock/:id", adminH.UpdateStock)
	admin.DELETE("/stock/:id", adminH.DeleteStock)
	admin.PUT("/cash", adminH.SetCash)
	admin.GET("/finnhub-key", adminH.GetKey)
	admin.PUT("/finnhub-key", adminH.SetKey)
	admin.POST("/save-all", adminH.SaveAll)
	admin.POST("/event", eventH.Create)
	admin.PUT("/event/:id", eventH.Update)
	admin.DELETE("/event/:id", eventH.Delete)

	return &testAPI{router: r, db: db}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (a *testAPI) login(t *testing.T, name string) model.LoginResponse {
	t.Helper()
	w := a.do(t, "POST", "/api/login", gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[model.LoginResponse](t, w)
}
