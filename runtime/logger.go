package runtime

import (
	"strings"

	"github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the runtime logger from cfg.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// badgerLogger routes badger's printf-style logging into zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

var _ badger.Logger = badgerLogger{}

func newBadgerLogger(l *zap.Logger) badgerLogger {
	return badgerLogger{s: l.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// badger terminates most messages with a newline; zap adds its own.
func trim(f string) string { return strings.TrimSuffix(f, "\n") }

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.s.Errorf(trim(f), v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.s.Warnf(trim(f), v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.s.Infof(trim(f), v...) }
func (b badgerLogger) Debugf(f string, v ...interface{})   { b.s.Debugf(trim(f), v...) }
