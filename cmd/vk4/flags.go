package main

import (
	"github.com/urfave/cli/v3"

	"github.com/surfacelab/vk4go/internal/logger"
)

var (
	inputPath string
	logLevel  string
	logFormat string
)

func inputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "input",
		Aliases:     []string{"i"},
		Usage:       "path to .vk4 file",
		Destination: &inputPath,
		Required:    true,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	return logger.FromFlags(logLevel, logFormat)
}
