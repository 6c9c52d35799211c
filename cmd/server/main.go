package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"pushup-club/internal/config"
	"pushup-club/internal/handler"
	"pushup-club/internal/holiday"
	"pushup-club/internal/logger"
	"pushup-club/internal/middleware"
	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	if cfg.Database.Driver != "mysql" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			slog.Error("create data dir failed", "err", err)
			os.Exit(1)
		}
	}
	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	err = db.AutoMigrate(
		&model.Member{},
		&model.CompletionRecord{},
		&model.StockHolding{},
		&model.CashBalance{},
		&model.SiteConfig{},
		&model.Event{},
		&model.EventParticipant{},
	)
	if err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	cal := holiday.Korea()
	workdays := service.NewWorkdays(cal)
	penaltySvc := service.NewPenaltyService(db, workdays, cfg.Penalty.DailyFine)
	completionSvc := service.NewCompletionService(db)
	rankingSvc := service.NewRankingService(db, penaltySvc)
	authSvc := service.NewAuthService(db, cfg.Admins)
	adminSvc := service.NewAdminService(db)
	eventSvc := service.NewEventService(db)

	keys := service.NewKeyChain(
		service.StoreKey{DB: db, Key: service.FinnhubKeyConfig},
		service.EnvKey{Name: "FINNHUB_API_KEY"},
	)
	finnhub := service.NewFinnhubClient(cfg.Market.FinnhubBaseURL)
	quotes := service.NewQuoteCache(finnhub, keys)
	fx := service.NewFXCache(service.NewFXClient(cfg.Market.FXBaseURL), cfg.Market.FallbackKRWRate)
	assetSvc := service.NewAssetService(db, quotes, fx)

	authH := handler.NewAuthHandler(authSvc)
	calH := handler.NewCalendarHandler(db, cal, penaltySvc, completionSvc)
	rankH := handler.NewRankingHandler(rankingSvc)
	assetH := handler.NewAssetHandler(assetSvc, quotes)
	adminH := handler.NewAdminHandler(adminSvc, keys, finnhub)
	eventH := handler.NewEventHandler(eventSvc, adminSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

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
	admin.POST("/finnhub-test", adminH.TestKey)
	admin.POST("/save-all", adminH.SaveAll)
	admin.POST("/event", eventH.Create)
	admin.PUT("/event/:id", eventH.Update)
	admin.DELETE("/event/:id", eventH.Delete)

	if dir := cfg.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			r.Static("/static", dir)
			r.NoRoute(func(c *gin.Context) {
				c.File(filepath.Join(dir, "index.html"))
			})
		}
	}

	slog.Info("server starting", "addr", cfg.Addr(), "driver", cfg.Database.Driver)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
