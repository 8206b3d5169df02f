// Package log provides the shared logr front for azlift packages. Packages
// grab named loggers at init time (var log = logf.Log.WithName("...")); the
// entrypoint installs the real sink later with SetLogger, and everything
// logged before that is dropped.
package log

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// Log is the root logger. Safe to call WithName/WithValues on before a
// logger has been set.
var Log logr.Logger = &delegatingLogger{}

var (
	mu   sync.RWMutex
	root logr.Logger = nullLogger{}
)

// SetLogger installs the backing logger for all loggers derived from Log.
func SetLogger(l logr.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l
}

// ZapLogger returns a zap based logr.Logger suitable for SetLogger.
func ZapLogger(development bool) logr.Logger {
	var zlog *zap.Logger
	var err error
	if development {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return zapr.NewLogger(zlog)
}

type delegatingLogger struct {
	name   string
	values []interface{}
}

func (d *delegatingLogger) resolve() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := root
	if d.name != "" {
		l = l.WithName(d.name)
	}
	if len(d.values) > 0 {
		l = l.WithValues(d.values...)
	}
	return l
}

func (d *delegatingLogger) Enabled() bool { return d.resolve().Enabled() }

func (d *delegatingLogger) Info(msg string, keysAndValues ...interface{}) {
	d.resolve().Info(msg, keysAndValues...)
}

func (d *delegatingLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	d.resolve().Error(err, msg, keysAndValues...)
}

func (d *delegatingLogger) V(level int) logr.InfoLogger { return d.resolve().V(level) }

func (d *delegatingLogger) WithValues(keysAndValues ...interface{}) logr.Logger {
	values := append(append([]interface{}{}, d.values...), keysAndValues...)
	return &delegatingLogger{name: d.name, values: values}
}

func (d *delegatingLogger) WithName(name string) logr.Logger {
	if d.name != "" {
		name = d.name + "." + name
	}
	return &delegatingLogger{name: name, values: d.values}
}

type nullLogger struct{}

func (nullLogger) Enabled() bool                         { return false }
func (nullLogger) Info(string, ...interface{})           {}
func (nullLogger) Error(error, string, ...interface{})   {}
func (nullLogger) V(int) logr.InfoLogger                 { return nullLogger{} }
func (nullLogger) WithValues(...interface{}) logr.Logger { return nullLogger{} }
func (nullLogger) WithName(string) logr.Logger           { return nullLogger{} }
