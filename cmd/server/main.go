package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"holdem-server/internal/config"
	"holdem-server/internal/mux"
)

const readTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	m, err := mux.NewMux(Version, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not create the server")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	// no write timeout, websockets are long-lived
	srv := &http.Server{
		Addr:        *addr,
		Handler:     loggingHandler(c.Handler(m)),
		ReadTimeout: readTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":      srv.Addr,
		"version":   Version,
		"maxSeats":  cfg.Table.MaxSeats,
		"blinds":    []int{cfg.Table.SmallBlind, cfg.Table.BigBlind},
		"turnLimit": cfg.Clock.TurnTimeout.String(),
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
