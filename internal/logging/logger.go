// ABOUTME: Process-wide logrus setup with optional rotating file output.
// ABOUTME: Logs go to stderr so stdout stays clean for reports and the MCP transport.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the standard logrus logger. The returned closer releases
// the rotating log file; it is a no-op when logging to stderr only.
func Setup(params SetupParams) io.Closer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: params.LogFileName != ""})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,  // gzip rotated files
	}

	var out io.Writer = lumberJackLogger
	if params.LogToStderr {
		out = io.MultiWriter(os.Stderr, lumberJackLogger)
	}
	logrus.SetOutput(out)
	return lumberJackLogger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// GetLevel maps a level name to a logrus level. Unknown names fall back to
// warn so a typo in the config never floods the terminal.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.WarnLevel
	}
}
