package config

import "github.com/spf13/viper"

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "jobportal")
	v.SetDefault("run_mode", "debug")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("data.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("data.mongodb.username", "")
	v.SetDefault("data.mongodb.password", "")
	v.SetDefault("data.mongodb.database", "jobportal")
	v.SetDefault("data.mongodb.jobs_collection", "jobs")
	v.SetDefault("data.mongodb.applications_collection", "application")
	v.SetDefault("data.mongodb.connect_timeout", "10s")
	v.SetDefault("data.mongodb.ensure_indexes", true)

	v.SetDefault("auth.provider", AuthProviderFirebase)
	v.SetDefault("auth.firebase.project_id", "")
	v.SetDefault("auth.firebase.cert_url", "")
	v.SetDefault("auth.hmac.secret", "")
	v.SetDefault("auth.hmac.issuer", "")
	v.SetDefault("auth.hmac.token_expire", "24h")

	v.SetDefault("observes.sentry.endpoint", "")
	v.SetDefault("observes.sentry.environment", "")
	v.SetDefault("observes.sentry.release", "")
	v.SetDefault("observes.tracer.endpoint", "")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "jobportal")

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", false)

	v.SetDefault("application.statuses", defaultStatuses)
	v.SetDefault("application.default_status", "pending")
}
