package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/jiffybox/internal/api"
)

const (
	// EnvPrefix is the prefix of the environment variables, e.g. JIFFYBOX_TOKEN.
	EnvPrefix = "JIFFYBOX"

	keyToken           = "token"
	keyAPIURL          = "api.url"
	keyAPIVersion      = "api.version"
	keyAPITimeout      = "api.timeout"
	keyAPIVerifyTLS    = "api.verify_tls"
	keyJournalPath     = "journal.path"
	keyJournalDisabled = "journal.disabled"
	keyOutputFormat    = "output.format"
)

// Config is the CLI configuration loaded from the config file and the environment.
type Config struct {
	Token           string
	APIURL          string
	APIVersion      string
	Timeout         time.Duration
	VerifyTLS       bool
	JournalPath     string
	JournalDisabled bool
	Format          string
}

// DefaultDir is the directory for the CLI local files.
func DefaultDir() string {
	return filepath.Join(homedir.HomeDir(), ".jiffybox")
}

// DefaultPath is the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultJournalPath is the default journal database path.
func DefaultJournalPath() string {
	return filepath.Join(DefaultDir(), "journal.db")
}

// LoaderConfig is the configuration of the config loader.
type LoaderConfig struct {
	// Path is the config file, when empty the default path is used and a
	// missing file is not an error.
	Path string
}

// Load loads the configuration, environment variables override the file values.
func Load(cfg LoaderConfig) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyAPIURL, api.DefaultBaseURL)
	v.SetDefault(keyAPIVersion, api.DefaultVersion)
	v.SetDefault(keyAPITimeout, api.DefaultTimeout)
	v.SetDefault(keyAPIVerifyTLS, false)
	v.SetDefault(keyJournalPath, DefaultJournalPath())
	v.SetDefault(keyJournalDisabled, false)
	v.SetDefault(keyOutputFormat, "table")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := cfg.Path
	optional := path == ""
	if optional {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !optional || !missing {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	c := &Config{
		Token:           v.GetString(keyToken),
		APIURL:          v.GetString(keyAPIURL),
		APIVersion:      v.GetString(keyAPIVersion),
		Timeout:         v.GetDuration(keyAPITimeout),
		VerifyTLS:       v.GetBool(keyAPIVerifyTLS),
		JournalPath:     v.GetString(keyJournalPath),
		JournalDisabled: v.GetBool(keyJournalDisabled),
		Format:          v.GetString(keyOutputFormat),
	}

	if c.Timeout < 0 {
		return nil, fmt.Errorf("api timeout can't be negative")
	}

	return c, nil
}
