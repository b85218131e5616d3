package logger

import (
	"go.uber.org/zap"
)

// New, ortam adına göre zap logger kurar.
// production: JSON çıktı, info seviyesi; diğerleri: console, debug.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
