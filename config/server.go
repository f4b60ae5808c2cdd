package config

import (
	"slices"
	"time"

	"github.com/spf13/viper"
)

// Server HTTP listener settings
type Server struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            v.GetString("server.host"),
		Port:            v.GetInt("server.port"),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 30*time.Second),
	}
}

// Metrics prometheus exposition settings
type Metrics struct {
	Enabled   bool
	Path      string
	Namespace string
}

func getMetricsConfig(v *viper.Viper) *Metrics {
	return &Metrics{
		Enabled:   v.GetBool("metrics.enabled"),
		Path:      getStringOrDefault(v, "metrics.path", "/metrics"),
		Namespace: getStringOrDefault(v, "metrics.namespace", "jobportal"),
	}
}

// CORS cross-origin settings
type CORS struct {
	AllowOrigins     []string
	AllowCredentials bool
}

func getCORSConfig(v *viper.Viper) *CORS {
	return &CORS{
		AllowOrigins:     getStringSliceOrDefault(v, "cors.allow_origins", []string{"*"}),
		AllowCredentials: v.GetBool("cors.allow_credentials"),
	}
}

var defaultStatuses = []string{"pending", "reviewing", "interview", "hired", "rejected"}

// Application job application settings
type Application struct {
	Statuses      []string
	DefaultStatus string
}

func getApplicationConfig(v *viper.Viper) *Application {
	return &Application{
		Statuses:      getStringSliceOrDefault(v, "application.statuses", defaultStatuses),
		DefaultStatus: getStringOrDefault(v, "application.default_status", "pending"),
	}
}

// IsValidStatus reports whether status is in the configured set.
func (a *Application) IsValidStatus(status string) bool {
	return slices.Contains(a.Statuses, status)
}
