// VulcanizeDB
// Copyright © 2024 Vulcanize

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package provider

import (
	"time"

	"github.com/spf13/viper"
)

// Env variables
const (
	PROVIDER_URL     = "PROVIDER_URL"
	PROVIDER_TIMEOUT = "PROVIDER_TIMEOUT"
)

const (
	DefaultURL     = "http://127.0.0.1:8545"
	DefaultTimeout = 5 * time.Second
)

// Config struct
type Config struct {
	URL     string
	Timeout time.Duration
}

// NewConfig is used to initialize a provider config from a .toml file, env
// variables or flags.
func NewConfig() *Config {
	c := new(Config)

	viper.BindEnv("provider.url", PROVIDER_URL)
	viper.BindEnv("provider.timeout", PROVIDER_TIMEOUT)

	c.URL = viper.GetString("provider.url")
	if c.URL == "" {
		c.URL = DefaultURL
	}
	c.Timeout = viper.GetDuration("provider.timeout")
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
