package store

import (
	"errors"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the part of the configuration the store needs.
type Config interface {
	BasePath() string
	Backend() string
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Settings is the full jos configuration.
type Settings struct {
	Path      string `json:"path"`
	Store     string `json:"store"`
	Links     string `json:"links"`
	Particles int    `json:"particles"`
	Lines     int    `json:"lines"`
	FPS       int    `json:"fps"`
	City      string `json:"city"`
	Log       string `json:"log"`
	LogLevel  string `json:"log_level"`
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// Backend implements Config.
func (s *Settings) Backend() string {
	if s.Store == "" {
		return BackendDiskv
	}
	return s.Store
}

// LoadConfig reads .jos.yaml from $JOS_CONFIG_PATH, the working directory
// or $HOME, then applies JOS_* environment overrides.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.jos.db")
	v.SetDefault("store", BackendDiskv)
	v.SetDefault("links", "links.json")
	v.SetDefault("particles", 50)
	v.SetDefault("lines", 8)
	v.SetDefault("fps", 60)
	v.SetDefault("city", "Madrid")
	v.SetDefault("log", "")
	v.SetDefault("log_level", "info")
	v.SetConfigName(".jos") // .yaml is implicit
	v.SetEnvPrefix("JOS")
	v.AutomaticEnv()

	if override := os.Getenv("JOS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	s := &Settings{
		Path:      v.GetString("path"),
		Store:     v.GetString("store"),
		Links:     v.GetString("links"),
		Particles: v.GetInt("particles"),
		Lines:     v.GetInt("lines"),
		FPS:       v.GetInt("fps"),
		City:      v.GetString("city"),
		Log:       v.GetString("log"),
		LogLevel:  v.GetString("log_level"),
	}
	var err error
	if s.Path, err = homedir.Expand(s.Path); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(s.Links, "http://") && !strings.HasPrefix(s.Links, "https://") {
		if s.Links, err = homedir.Expand(s.Links); err != nil {
			return nil, err
		}
	}
	return s, nil
}
