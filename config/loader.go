// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PATHFINDER"

// Load resolves the configuration from defaults, an optional config.yaml
// in the working directory or ./configs, and PATHFINDER_* environment
// variables. A .env file is loaded first when one exists.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return resolve(v)
}

// LoadFromFile resolves the configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return resolve(v)
}

func resolve(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// AutomaticEnv does not cover keys absent from the file, so the
	// common connection settings get explicit overrides.
	if host := os.Getenv(envPrefix + "_AI_EMBEDDING_HOST"); host != "" {
		cfg.AI.EmbeddingHost = host
	}
	if host := os.Getenv(envPrefix + "_AI_REWRITE_HOST"); host != "" {
		cfg.AI.RewriteHost = host
	}
	if token := os.Getenv(envPrefix + "_AI_TOKEN"); token != "" {
		cfg.AI.Token = token
	}
	if path := os.Getenv(envPrefix + "_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if path := os.Getenv(envPrefix + "_DATASET_PATH"); path != "" {
		cfg.Dataset.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads a .env file from the working directory or the
// nearest ancestor containing go.mod. Missing files are not an error.
func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
