package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data configuration
type Data struct {
	MongoDB *MongoDB
}

// MongoDB connection and collection settings
type MongoDB struct {
	URI                    string
	Username               string
	Password               string
	Database               string
	JobsCollection         string
	ApplicationsCollection string
	ConnectTimeout         time.Duration
	EnsureIndexes          bool
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoDB: &MongoDB{
			URI:                    v.GetString("data.mongodb.uri"),
			Username:               v.GetString("data.mongodb.username"),
			Password:               v.GetString("data.mongodb.password"),
			Database:               getStringOrDefault(v, "data.mongodb.database", "jobportal"),
			JobsCollection:         getStringOrDefault(v, "data.mongodb.jobs_collection", "jobs"),
			ApplicationsCollection: getStringOrDefault(v, "data.mongodb.applications_collection", "application"),
			ConnectTimeout:         getDurationOrDefault(v, "data.mongodb.connect_timeout", 10*time.Second),
			EnsureIndexes:          v.GetBool("data.mongodb.ensure_indexes"),
		},
	}
}
