package core

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		Profile      bool // log timings of every storage call
		AppName      string
		Build        string
		RollbarToken string
		ExportDir    string
		Database     DatabaseConfig
	}

	DatabaseConfig struct {
		Engine     string
		Path       string // sqlite file
		Host       string
		Port       int
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed by the current ENV, e.g. DEV_DB_ENGINE=postgres.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", false)
	conf.SetDefault("testMode", false)
	conf.SetDefault("profile", false)
	conf.SetDefault("appName", "Attendance")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("exportDir", ".")
	conf.SetDefault("db.engine", EngineSQLite)
	conf.SetDefault("db.path", "attendance.db")
	conf.SetDefault("db.host", "localhost")
	conf.SetDefault("db.port", 5432)
	conf.SetDefault("db.name", "attendance")
	conf.SetDefault("db.user", "postgres")
	conf.SetDefault("db.password", "")
	conf.SetDefault("db.disableTLS", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
		conf.SetDefault("debug", true)
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Profile:      conf.GetBool("profile"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		ExportDir:    conf.GetString("exportDir"),
		Database: DatabaseConfig{
			Engine:     strings.ToLower(conf.GetString("db.engine")),
			Path:       conf.GetString("db.path"),
			Host:       conf.GetString("db.host"),
			Port:       conf.GetInt("db.port"),
			Name:       conf.GetString("db.name"),
			User:       conf.GetString("db.user"),
			Password:   conf.GetString("db.password"),
			DisableTLS: conf.GetBool("db.disableTLS"),
		},
	}

	switch c.Database.Engine {
	case EngineSQLite, EnginePostgres, EngineMemory:
	default:
		return nil, errors.Errorf("unsupported database engine %q", c.Database.Engine)
	}
	return c, nil
}
