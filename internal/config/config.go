package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration. Tokens are issued elsewhere;
// Expiration only applies to development tokens minted by the CLI.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// PlannerConfig holds defaults applied to plan requests that leave them out.
type PlannerConfig struct {
	DistanceUnit       string        `mapstructure:"distance_unit"`   // "miles" or "kilometers"
	RaceStartTime      string        `mapstructure:"race_start_time"` // "07:00"
	DefaultWorkoutDays []int         `mapstructure:"default_workout_days"`
	ExportURLExpiry    time.Duration `mapstructure:"export_url_expiry"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path, when present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(strings.TrimSuffix(path, "/") + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "marathon_planner")
	viper.SetDefault("s3.endpoint", "")
	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("s3.access_key_id", "")
	viper.SetDefault("s3.secret_access_key", "")
	viper.SetDefault("s3.bucket_name", "plan-exports")
	viper.SetDefault("s3.use_ssl", true)
	// Keys need a default for AutomaticEnv to reach them during Unmarshal.
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("planner.distance_unit", "miles")
	viper.SetDefault("planner.race_start_time", "07:00")
	viper.SetDefault("planner.default_workout_days", []int{2, 4, 7})
	viper.SetDefault("planner.export_url_expiry", "15m")
	viper.SetDefault("log.debug", false)

	err = viper.ReadInConfig()
	// A missing file is fine, defaults and env vars still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}
	return config, nil
}
