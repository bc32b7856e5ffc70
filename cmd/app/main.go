package main

import (
	"myfunzone/config"
	"myfunzone/di"
	"myfunzone/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
