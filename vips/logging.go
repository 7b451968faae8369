package vips

// #include "vips.h"
import "C"
import (
	"log"
	"sync"
)

// LogLevel is a GLib log level
type LogLevel int

// LogLevel values, most severe first
const (
	LogLevelError    LogLevel = C.G_LOG_LEVEL_ERROR
	LogLevelCritical LogLevel = C.G_LOG_LEVEL_CRITICAL
	LogLevelWarning  LogLevel = C.G_LOG_LEVEL_WARNING
	LogLevelMessage  LogLevel = C.G_LOG_LEVEL_MESSAGE
	LogLevelInfo     LogLevel = C.G_LOG_LEVEL_INFO
	LogLevelDebug    LogLevel = C.G_LOG_LEVEL_DEBUG
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelCritical:
		return "CRITICAL"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelMessage:
		return "MESSAGE"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// LoggingHandlerFunction receives every message logged by libvips and by
// this package
type LoggingHandlerFunction func(messageDomain string, messageLevel LogLevel, message string)

var (
	logLock      sync.RWMutex
	logHandler   LoggingHandlerFunction = defaultLoggingHandler
	logVerbosity                        = LogLevelWarning
)

// LoggingSettings replaces the log handler and verbosity. A nil handler keeps
// the default one, which writes through the standard logger. Messages less
// severe than verbosity are dropped.
func LoggingSettings(handler LoggingHandlerFunction, verbosity LogLevel) {
	logLock.Lock()
	defer logLock.Unlock()

	if handler == nil {
		handler = defaultLoggingHandler
	}
	logHandler = handler
	logVerbosity = verbosity
}

func defaultLoggingHandler(messageDomain string, messageLevel LogLevel, message string) {
	log.Printf("[%s] %s: %s", messageDomain, messageLevel, message)
}

//export vipscallLoggingHandler
func vipscallLoggingHandler(domain *C.char, level C.int, message *C.char) {
	// strip G_LOG_FLAG_RECURSION and G_LOG_FLAG_FATAL
	vipsLog(C.GoString(domain), LogLevel(level)&^3, C.GoString(message))
}

func vipsLog(domain string, level LogLevel, message string) {
	logLock.RLock()
	handler, verbosity := logHandler, logVerbosity
	logLock.RUnlock()

	// GLib levels grow as severity drops
	if level > verbosity {
		return
	}
	handler(domain, level, message)
}
