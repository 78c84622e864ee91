// Package infrastructure provides reusable infrastructure components for Go applications.
package infrastructure

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLoggerAdapter routes Fx's internal lifecycle events through a
// zap.SugaredLogger. Routine events log at debug, failures at error.
type FxLoggerAdapter struct {
	logger *zap.SugaredLogger
}

// NewFxLoggerAdapter creates an fxevent.Logger backed by the given Zap logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Sugar()}
}

// LogEvent implements fxevent.Logger.
func (a *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		a.logger.Debugf("OnStart executing: %s", e.FunctionName)
	case *fxevent.OnStartExecuted:
		a.hook("OnStart", e.FunctionName, e.Err)
	case *fxevent.OnStopExecuting:
		a.logger.Debugf("OnStop executing: %s", e.FunctionName)
	case *fxevent.OnStopExecuted:
		a.hook("OnStop", e.FunctionName, e.Err)
	case *fxevent.Supplied:
		a.logger.Debugf("supplied: %s", e.TypeName)
	case *fxevent.Provided:
		a.logger.Debugf("provided: %v", e.OutputTypeNames)
	case *fxevent.Invoking:
		a.logger.Debugf("invoking: %s", e.FunctionName)
	case *fxevent.Invoked:
		if e.Err != nil {
			a.logger.Errorf("invoke failed: %s: %v", e.FunctionName, e.Err)
		}
	case *fxevent.Stopping:
		a.logger.Infof("received %s, stopping", e.Signal)
	case *fxevent.Stopped:
		if e.Err != nil {
			a.logger.Errorf("stop failed: %v", e.Err)
		}
	case *fxevent.RollingBack:
		a.logger.Errorf("start failed, rolling back: %v", e.StartErr)
	case *fxevent.RolledBack:
		if e.Err != nil {
			a.logger.Errorf("rollback failed: %v", e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			a.logger.Errorf("start failed: %v", e.Err)
		} else {
			a.logger.Info("started")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			a.logger.Errorf("logger initialization failed: %v", e.Err)
		}
	default:
		a.logger.Debugf("unhandled Fx event: %T", event)
	}
}

func (a *FxLoggerAdapter) hook(kind, function string, err error) {
	if err != nil {
		a.logger.Errorf("%s failed: %s: %v", kind, function, err)
	} else {
		a.logger.Debugf("%s executed: %s", kind, function)
	}
}
