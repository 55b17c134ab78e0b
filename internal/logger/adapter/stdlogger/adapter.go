// Package stdlogger adapts zerolog to printf style logging interfaces.
// It is used to feed log output of libraries expecting a std like logger
// (for example gorm) into the portal's zerolog setup.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Adapter implements Debugf/Infof/Warningf/Errorf on top of zerolog.
type Adapter struct {
	logger zerolog.Logger
}

// New creates a new std style logger adapter backed by the global zerolog logger.
func New() *Adapter {
	return &Adapter{logger: log.Logger}
}

// Debugf logs a formatted message at debug level.
func (a *Adapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}

// Infof logs a formatted message at info level.
func (a *Adapter) Infof(format string, args ...interface{}) {
	a.logger.Info().Msgf(format, args...)
}

// Warningf logs a formatted message at warn level.
func (a *Adapter) Warningf(format string, args ...interface{}) {
	a.logger.Warn().Msgf(format, args...)
}

// Errorf logs a formatted message at error level.
func (a *Adapter) Errorf(format string, args ...interface{}) {
	a.logger.Error().Msgf(format, args...)
}

// Printf logs a formatted message at info level.
// gorm's default logger interface expects this method.
func (a *Adapter) Printf(format string, args ...interface{}) {
	a.logger.Info().Msgf(format, args...)
}
