//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
)

const (
	DefaultScheme   = "http"
	DefaultHost     = "localhost:8080"
	DefaultGRPCPort = "50051"
	DefaultTimeout  = 30 * time.Second
	DefaultRetries  = uint64(3)
)

// Config outline of the config file
type Config struct {
	Scheme         string            `json:"scheme" yaml:"scheme"`
	Host           string            `json:"host" yaml:"host"`
	GRPC           GRPC              `json:"grpc" yaml:"grpc"`
	Authentication Authentication    `json:"authentication" yaml:"authentication"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	// BeaconHost is the peer name written into beacons, the server's own
	// objects use "localhost".
	BeaconHost string `json:"beacon_host" yaml:"beacon_host"`
	// ServerVersion decides which wire shapes are used. Empty means the
	// newest known server.
	ServerVersion string        `json:"server_version" yaml:"server_version"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	Retries       uint64        `json:"retries" yaml:"retries"`
	Logging       Logging       `json:"logging" yaml:"logging"`
	Monitoring    Monitoring    `json:"monitoring" yaml:"monitoring"`
}

type GRPC struct {
	// Host defaults to the REST host on the default gRPC port.
	Host   string `json:"host" yaml:"host"`
	Secure bool   `json:"secure" yaml:"secure"`
}

type Authentication struct {
	APIKey string `json:"api_key" yaml:"api_key"`
}

type Logging struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type Monitoring struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() Config {
	return Config{
		Scheme:     DefaultScheme,
		Host:       DefaultHost,
		BeaconHost: crossref.DefaultHost,
		Timeout:    DefaultTimeout,
		Retries:    DefaultRetries,
		Logging: Logging{
			Level:  logrus.InfoLevel.String(),
			Format: "text",
		},
	}
}

// Load from config locations. The load order for configuration values is the following
// 1. Defaults
// 2. Config file, if a path is given
// 3. Environment variables
// If a config option is specified multiple times in different locations, the latest one will be used in this order.
func Load(configFileName string, logger logrus.FieldLogger) (Config, error) {
	config := Default()

	if configFileName != "" {
		file, err := os.ReadFile(configFileName)
		if err != nil {
			return config, configErr(errors.Wrap(err, "read config file"))
		}
		logger.WithField("action", "config_load").WithField("config_file_path", configFileName).
			Debug("loading config file")
		if err := parseConfigFile(file, configFileName, &config); err != nil {
			return config, configErr(err)
		}
	}

	if err := FromEnv(&config); err != nil {
		return config, configErr(err)
	}

	if err := config.Validate(); err != nil {
		return config, configErr(err)
	}
	return config, nil
}

var configFileExtension = regexp.MustCompile(`.*\.(\w+)$`)

// parseConfigFile decodes file on top of config, keys missing in the file
// keep their current value.
func parseConfigFile(file []byte, name string, config *Config) error {
	m := configFileExtension.FindStringSubmatch(name)
	if len(m) < 2 {
		return fmt.Errorf("config file does not have a file ending, got '%s'", name)
	}

	switch m[1] {
	case "json":
		if err := json.Unmarshal(file, config); err != nil {
			return errors.Wrap(err, "error unmarshalling the json config file")
		}
	case "yaml", "yml":
		if err := yaml.UnmarshalStrict(file, config); err != nil {
			return errors.Wrap(err, "error unmarshalling the yaml config file")
		}
	default:
		return fmt.Errorf("unsupported config file extension '%s', use .yaml or .json", m[1])
	}
	return nil
}

// Validate the configuration. All problems are reported at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Scheme != "http" && c.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("scheme must be either 'http' or 'https', got '%s'", c.Scheme))
	}
	if c.Host == "" {
		result = multierror.Append(result, fmt.Errorf("host must be set"))
	}
	if c.GRPC.Host != "" {
		if _, _, err := net.SplitHostPort(c.GRPC.Host); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "grpc.host"))
		}
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout cannot be negative, got %s", c.Timeout))
	}
	if c.ServerVersion != "" {
		if _, err := CapabilitiesForVersion(c.ServerVersion); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "server_version"))
		}
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "logging.level"))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		result = multierror.Append(result,
			fmt.Errorf("logging.format must be either 'text' or 'json', got '%s'", c.Logging.Format))
	}

	return result.ErrorOrNil()
}

// GetHostAddress from config locations
func (c Config) GetHostAddress() string {
	return fmt.Sprintf("%s://%s", c.Scheme, c.Host)
}

// GRPCAddress is the explicit gRPC host, or the REST host on the default
// gRPC port.
func (c Config) GRPCAddress() string {
	if c.GRPC.Host != "" {
		return c.GRPC.Host
	}
	host := c.Host
	if h, _, err := net.SplitHostPort(c.Host); err == nil {
		host = h
	}
	return net.JoinHostPort(host, DefaultGRPCPort)
}

// Capabilities of the configured server version.
func (c Config) Capabilities() (*capabilities.Server, error) {
	if c.ServerVersion == "" {
		return capabilities.All(), nil
	}
	return CapabilitiesForVersion(c.ServerVersion)
}

func (c Config) BeaconBuilder(defaultCollection string) crossref.Builder {
	return crossref.NewBuilder(c.BeaconHost, defaultCollection)
}

// NewLogger builds the logger described by the logging section. The config
// is expected to be validated.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if level, err := logrus.ParseLevel(c.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if c.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger
}

func configErr(err error) error {
	return fmt.Errorf("invalid config: %w", err)
}
