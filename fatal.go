package ioc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fatalPrefix = "IoC fatal error: "

// fail hands err to the fatal handler.
func (c *Container) fail(err error) {
	c.fatal(fatalPrefix + err.Error())
}

// logFatal is the default FatalHandler. zap exits the process after a Fatal
// entry even when the level is disabled, so a logger that would drop the
// entry is replaced by a stderr logger first.
func (c *Container) logFatal(msg string) {
	logger := c.logger
	if !logger.Core().Enabled(zapcore.FatalLevel) {
		logger = stderrLogger(zapcore.FatalLevel)
	}
	logger.Fatal(msg, zap.String("component", "ioc"))
}

// stderrLogger writes console-encoded entries at or above level to stderr.
func stderrLogger(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
