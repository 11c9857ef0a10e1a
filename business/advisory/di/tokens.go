// Package di contains dependency injection tokens for the advisory context.
package di

import (
	"github.com/solwatch/arbbot/business/advisory/app"
	"github.com/solwatch/arbbot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Advisor = di.NewToken[app.Advisor]("advisory.Advisor")
)

// Helper functions for type-safe access
func GetAdvisor(c di.ServiceRegistry) app.Advisor {
	return di.GetToken(c, Advisor)
}
