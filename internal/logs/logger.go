package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	loggerDebug *log.Logger
	loggerInfo  *log.Logger
	loggerWarn  *log.Logger
	loggerError *log.Logger

	logLevel = "INFO"
	verbose  = false
	logFile  *os.File
)

// SetVerbose enables or disables mirroring of log lines to the console.
func SetVerbose(v bool) {
	verbose = v
}

// InitLogger sets up log prefixes and levels. Logs are written to a file in
// the config directory, and only shown on stdout/stderr in verbose mode.
func InitLogger() error {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %v", err)
		}
		xdg = filepath.Join(home, ".config")
	}
	logDir := filepath.Join(xdg, "workstack", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	var err error
	logFile, err = os.OpenFile(filepath.Join(logDir, "workstack.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	debugWriter := io.Writer(logFile)
	infoWriter := io.Writer(logFile)
	warnWriter := io.Writer(logFile)
	errorWriter := io.Writer(logFile)

	if verbose {
		debugWriter = io.MultiWriter(logFile, os.Stdout)
		infoWriter = io.MultiWriter(logFile, os.Stdout)
		warnWriter = io.MultiWriter(logFile, os.Stdout)
		errorWriter = io.MultiWriter(logFile, os.Stderr)
	}

	loggerDebug = log.New(debugWriter, "[DEBUG] ", flags)
	loggerInfo = log.New(infoWriter, "[INFO ] ", flags)
	loggerWarn = log.New(warnWriter, "[WARN ] ", flags)
	loggerError = log.New(errorWriter, "[ERROR] ", flags)

	if lvl := os.Getenv("WORKSTACK_LOG_LEVEL"); lvl != "" {
		logLevel = strings.ToUpper(lvl)
	}
	Debug("Logger initialized. Level=%s, Verbose=%v", logLevel, verbose)
	return nil
}

func Debug(format string, v ...interface{}) {
	if loggerDebug != nil && logLevel == "DEBUG" {
		loggerDebug.Output(2, fmt.Sprintf(callerInfo()+format, v...))
	}
}

func Info(format string, v ...interface{}) {
	if loggerInfo != nil && (logLevel == "DEBUG" || logLevel == "INFO") {
		loggerInfo.Output(2, fmt.Sprintf(callerInfo()+format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if loggerWarn != nil && logLevel != "ERROR" {
		loggerWarn.Output(2, fmt.Sprintf(callerInfo()+format, v...))
	}
}

func Error(format string, v ...interface{}) {
	if loggerError != nil {
		loggerError.Output(2, fmt.Sprintf(callerInfo()+format, v...))
	}
}

func callerInfo() string {
	// skip=3 to get the frame above these wrappers.
	pc, _, line, ok := runtime.Caller(3)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	var name string
	if fn != nil {
		name = fn.Name()
	}
	return fmt.Sprintf("[%s:%d] ", name, line)
}

// Close closes the log file.
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}
