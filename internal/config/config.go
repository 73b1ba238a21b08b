package config

import (
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	ListenPort         string        `yaml:"listen_port"`
	GXWebURL           string        `yaml:"gxweb_url"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"` // upstream uses a self-signed cert
	UserAgent          string        `yaml:"user_agent"`           // impersonated client signature, see gxweb.Options
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
}

type Private struct {
	GXWebUser string `yaml:"gxweb_user"`
	GXWebPass string `yaml:"gxweb_pass"`
}

// backend credentials stay out of the Public block so they never leak
// into anything that serializes the config

func (c *Config) GXWebUser() string {
	return c.private.GXWebUser
}

func (c *Config) GXWebPass() string {
	return c.private.GXWebPass
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	// .env is optional; environment variables win over the yaml files
	_ = godotenv.Load()

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GXWEB_URL"); v != "" {
		c.Public.GXWebURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Public.ListenPort = v
	}
	if v := os.Getenv("GXWEB_USER"); v != "" {
		c.private.GXWebUser = v
	}
	if v := os.Getenv("GXWEB_PASS"); v != "" {
		c.private.GXWebPass = v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.ListenPort == "" {
		c.Public.ListenPort = "3000"
	}
	if c.Public.RequestTimeout == 0 {
		c.Public.RequestTimeout = 30 * time.Second
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
