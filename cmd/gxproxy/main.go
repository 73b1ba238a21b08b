package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/mveldsman/gxproxy/internal/config"
	"github.com/mveldsman/gxproxy/internal/logger"
	"github.com/mveldsman/gxproxy/internal/router"
	"github.com/mveldsman/gxproxy/internal/setup"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 60 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps := setup.SetupDependencies(cfg)
	r := router.New(deps)

	server := &http.Server{
		Addr:         ":" + cfg.Public.ListenPort,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logger.Log.Info("starting gxproxy", "port", cfg.Public.ListenPort, "gxweb", cfg.Public.GXWebURL)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
