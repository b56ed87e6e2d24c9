package obs

import "go.uber.org/zap"

// NewLogger returns a production logger for the "production" environment
// and a development logger otherwise.
func NewLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
