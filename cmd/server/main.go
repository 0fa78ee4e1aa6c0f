package main

import (
	"github.com/transmutehq/transmute/internal/server"
	"github.com/transmutehq/transmute/internal/util"
	"github.com/transmutehq/transmute/pkg/logger"
	"github.com/transmutehq/transmute/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
