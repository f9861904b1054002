// Package log configures the log15 root handler for console and rotating
// file output.
package log

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"gopkg.in/natefinch/lumberjack.v2"

	"okinoko-guess_reveal/config"
)

// SetLogLevel sends records at or above logLevel to stdout.
func SetLogLevel(logLevel string) {
	log15.Root().SetHandler(consoleHandler(os.Stdout, logLevel))
}

// SetFileLog sets up console output and, when a log file is configured, a
// rotating file next to it.
func SetFileLog(cfg *config.Log) {
	if cfg == nil {
		cfg = &config.Log{LogFile: "logs/guessd.log"}
	}
	if cfg.LogFile == "" {
		SetLogLevel(cfg.LogConsoleLevel)
		return
	}
	fillDefaultValue(cfg)
	log15.Root().SetHandler(log15.MultiHandler(
		consoleHandler(os.Stdout, cfg.LogConsoleLevel),
		fileHandler(cfg),
	))
}

// Levels default to error so an empty config stays quiet.
func fillDefaultValue(cfg *config.Log) {
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
}

func consoleHandler(w io.Writer, logLevel string) log15.Handler {
	return log15.LvlFilterHandler(getLevel(logLevel), log15.StreamHandler(w, log15.TerminalFormat()))
}

func fileHandler(cfg *config.Log) log15.Handler {
	return log15.LvlFilterHandler(
		getLevel(cfg.Loglevel),
		log15.StreamHandler(newRotateLogger(cfg), log15.LogfmtFormat()),
	)
}

func newRotateLogger(cfg *config.Log) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		Compress:   cfg.Compress,
	}
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		return log15.LvlError
	}
	return lvl
}

// New returns a child of the root logger.
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
