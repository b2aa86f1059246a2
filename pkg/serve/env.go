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

package serve

import (
	"context"

	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

// Env variables
const (
	SERVER_HTTP             = "SERVER_HTTP"
	SERVER_HTTP_PATH        = "SERVER_HTTP_PATH"
	SERVER_WS               = "SERVER_WS"
	SERVER_WS_PATH          = "SERVER_WS_PATH"
	SERVER_IPC              = "SERVER_IPC"
	SERVER_IPC_PATH         = "SERVER_IPC_PATH"
	SERVER_GRAPHQL          = "SERVER_GRAPHQL"
	SERVER_GRAPHQL_PATH     = "SERVER_GRAPHQL_PATH"
	SERVER_HTTP_CORS        = "SERVER_HTTP_CORS"
	SERVER_HTTP_VHOSTS      = "SERVER_HTTP_VHOSTS"
	SERVER_UPSTREAM_URL     = "SERVER_UPSTREAM_URL"
	SERVER_UPSTREAM_TIMEOUT = "SERVER_UPSTREAM_TIMEOUT"
)

// getUpstream dials the node the stub defers net queries to, if one is configured
func getUpstream(ctx context.Context) (*provider.Client, error) {
	viper.BindEnv("server.upstream.url", SERVER_UPSTREAM_URL)
	viper.BindEnv("server.upstream.timeout", SERVER_UPSTREAM_TIMEOUT)

	url := viper.GetString("server.upstream.url")
	if url == "" {
		return nil, nil
	}
	timeout := viper.GetDuration("server.upstream.timeout")
	if timeout == 0 {
		timeout = provider.DefaultTimeout
	}
	return provider.Dial(ctx, &provider.Config{URL: url, Timeout: timeout})
}
