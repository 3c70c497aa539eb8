package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"skillshare-backend/config"
	"skillshare-backend/models/story"
	"skillshare-backend/models/users"
	"skillshare-backend/services/social"
	"skillshare-backend/services/stories"
	"skillshare-backend/storage"
)

func main() {
	config.Load()

	db, err := config.InitDB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}

	err = db.AutoMigrate(
		&users.User{},
		&users.Follow{},
		&story.Story{},
		&story.StoryView{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get database connection")
	}
	if err := sqlDB.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}
	logrus.Info("Database connection established")

	media := storage.FromEnv()

	service := stories.NewService(db, media, social.NewGraph(db), config.StoryTTL())
	sweeper := stories.NewSweeper(service.Store(), config.SweepInterval())

	stories.MustRegisterMetrics()
	metricsAddr := config.Getenv("METRICS_ADDR", ":9091")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logrus.WithField("addr", metricsAddr).Info("Metrics endpoint listening")
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logrus.WithError(err).Error("Metrics endpoint stopped")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logrus.WithField("signal", sig.String()).Info("Shutting down")

	cancel()
	<-done
}
