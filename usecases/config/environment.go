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
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FromEnv takes a *Config as it will respect initial config that has been
// provided by other means (e.g. a config file) and will only extend those that
// are set
func FromEnv(config *Config) error {
	if v := os.Getenv("WEAVIATE_SCHEME"); v != "" {
		config.Scheme = v
	}

	if v := os.Getenv("WEAVIATE_HOST"); v != "" {
		config.Host = v
	}

	if v := os.Getenv("WEAVIATE_GRPC_HOST"); v != "" {
		config.GRPC.Host = v
	}

	if v := os.Getenv("WEAVIATE_GRPC_SECURE"); v != "" {
		config.GRPC.Secure = enabled(v)
	}

	if v := os.Getenv("WEAVIATE_API_KEY"); v != "" {
		config.Authentication.APIKey = v
	}

	if v := os.Getenv("WEAVIATE_BEACON_HOST"); v != "" {
		config.BeaconHost = v
	}

	if v := os.Getenv("WEAVIATE_SERVER_VERSION"); v != "" {
		config.ServerVersion = v
	}

	if v := os.Getenv("WEAVIATE_TIMEOUT"); v != "" {
		timeout, err := parseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "parse WEAVIATE_TIMEOUT as duration")
		}
		config.Timeout = timeout
	}

	if v := os.Getenv("WEAVIATE_RETRIES"); v != "" {
		retries, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse WEAVIATE_RETRIES as uint")
		}
		config.Retries = retries
	}

	if v := os.Getenv("WEAVIATE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("WEAVIATE_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	if v := os.Getenv("WEAVIATE_MONITORING_ENABLED"); v != "" {
		config.Monitoring.Enabled = enabled(v)
	}

	return nil
}

// parseDuration accepts Go durations ("45s") and plain seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func enabled(value string) bool {
	switch strings.ToLower(value) {
	case "on", "enabled", "1", "true":
		return true
	default:
		return false
	}
}
