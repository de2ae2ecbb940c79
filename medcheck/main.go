package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medcheck/medcheck/config"
	"medcheck/medcheck/controllers"
	"medcheck/medcheck/routes"
	"medcheck/medcheck/services/agent"
	"medcheck/medcheck/sources/psql"
	"medcheck/medcheck/sources/psql/dao"
	"medcheck/medcheck/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	historyDAO := dao.NewChatHistoryDAO(db.Pool)
	conditionDAO := dao.NewConditionDAO(db.DB)

	var baseAgent agent.Agent
	switch cfg.AgentProvider {
	case "openai":
		baseAgent = agent.NewOpenAIAgent(cfg.AgentBaseURL, cfg.AgentAPIKey, cfg.AgentModel)
	default:
		baseAgent = agent.NewOllamaAgent(cfg.AgentBaseURL, cfg.AgentModel)
	}
	symptomAgent := agent.NewConditionAgent(baseAgent, conditionDAO, cfg.AgentContextRows)

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	symptomCtrl := controllers.NewSymptomController(historyDAO, symptomAgent)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/symptoms", routes.SymptomRoutes(symptomCtrl, cfg))
	r.Mount("/health", routes.HealthRoutes(healthCtrl))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
