package infrastructure

import (
	"log"

	"github.com/segyhp/loan-origination/internal/config"
	"github.com/segyhp/loan-origination/pkg/response"
)

// ConfigureLogging applies LOG_LEVEL and environment settings to the process logger
// and error responses.
func ConfigureLogging(cfg *config.Config) {
	flags := log.LstdFlags
	if cfg.IsDebug() {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	log.SetFlags(flags)

	response.HideErrorDetails(cfg.IsProduction())

	if cfg.IsDevelopment() {
		log.Printf("Development mode: database %s:%s/%s, redis %s, user service %q",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Redis.Addr(), cfg.Users.URL)
	}
}
