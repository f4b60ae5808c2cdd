package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	loggerConfig "github.com/careercode/jobportal/logging/logger/config"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JOBPORTAL_SERVER_PORT.
const EnvPrefix = "JOBPORTAL"

// Config represents the configuration implementation.
type Config struct {
	AppName     string
	RunMode     string
	Server      *Server
	Data        *Data
	Auth        *Auth
	Logger      *loggerConfig.Config
	Observes    *Observes
	Metrics     *Metrics
	CORS        *CORS
	Application *Application
	Viper       *viper.Viper

	mu sync.RWMutex
}

// LoadConfig loads the configuration from configPath, or from the default
// search paths when configPath is empty. A missing file is only an error when
// configPath was given explicitly; otherwise defaults and environment apply.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional and never overrides variables already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.jobportal")
		v.AddConfigPath("/etc/jobportal")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := build(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("app_name"),
		RunMode:     v.GetString("run_mode"),
		Server:      getServerConfig(v),
		Data:        getDataConfig(v),
		Auth:        getAuthConfig(v),
		Logger:      loggerConfig.GetConfig(v),
		Observes:    getObservesConfig(v),
		Metrics:     getMetricsConfig(v),
		CORS:        getCORSConfig(v),
		Application: getApplicationConfig(v),
		Viper:       v,
	}
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// variable names used by earlier deployments
	legacy := map[string]string{
		"server.port":              "PORT",
		"data.mongodb.username":    "DB_USER",
		"data.mongodb.password":    "DB_PASS",
		"auth.firebase.project_id": "FIREBASE_PROJECT_ID",
	}
	for key, name := range legacy {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, name); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the keys required by the selected providers.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Data.MongoDB.URI == "" {
		errs = append(errs, errors.New("data.mongodb.uri is required"))
	}
	switch c.Auth.Provider {
	case AuthProviderFirebase:
		if c.Auth.Firebase.ProjectID == "" {
			errs = append(errs, errors.New("auth.firebase.project_id is required for the firebase provider"))
		}
	case AuthProviderHMAC:
		if c.Auth.HMAC.Secret == "" {
			errs = append(errs, errors.New("auth.hmac.secret is required for the hmac provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth.provider %q", c.Auth.Provider))
	}
	if len(c.Application.Statuses) == 0 {
		errs = append(errs, errors.New("application.statuses must not be empty"))
	} else if !c.Application.IsValidStatus(c.Application.DefaultStatus) {
		errs = append(errs, fmt.Errorf("application.default_status %q is not in application.statuses", c.Application.DefaultStatus))
	}
	return errors.Join(errs...)
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// IsProduction reports run_mode == release.
func (c *Config) IsProduction() bool {
	return c.RunMode == "release"
}

// LogLevel returns the current logger level, safe against concurrent reloads.
func (c *Config) LogLevel() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logger.Level
}

// Watch re-reads the file on change and hands the fresh logger level to
// onLevel. Other sections need a restart.
func (c *Config) Watch(onLevel func(level int)) {
	if c.Viper.ConfigFileUsed() == "" {
		return
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		lc := loggerConfig.GetConfig(c.Viper)
		c.mu.Lock()
		c.Logger.Level = lc.Level
		c.mu.Unlock()
		if onLevel != nil {
			onLevel(lc.Level)
		}
	})
	c.Viper.WatchConfig()
}
