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
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

// Config struct
type Config struct {
	HTTPEnabled  bool
	HTTPEndpoint string
	CORS         []string
	VHosts       []string

	WSEnabled  bool
	WSEndpoint string

	IPCEnabled  bool
	IPCEndpoint string

	// GraphQL is mounted at /graphql on the HTTP endpoint, or served on its
	// own when GraphQLEndpoint is set.
	GraphQLEnabled  bool
	GraphQLEndpoint string

	Upstream *provider.Client
	Node     *devnode.Config
}

// NewConfig is used to initialize a stub node server config from a .toml
// file, env variables or flags
func NewConfig(ctx context.Context) (*Config, error) {
	c := new(Config)

	viper.BindEnv("server.http", SERVER_HTTP)
	viper.BindEnv("server.httpPath", SERVER_HTTP_PATH)
	viper.BindEnv("server.ws", SERVER_WS)
	viper.BindEnv("server.wsPath", SERVER_WS_PATH)
	viper.BindEnv("server.ipc", SERVER_IPC)
	viper.BindEnv("server.ipcPath", SERVER_IPC_PATH)
	viper.BindEnv("server.graphql", SERVER_GRAPHQL)
	viper.BindEnv("server.graphqlPath", SERVER_GRAPHQL_PATH)
	viper.BindEnv("server.httpCors", SERVER_HTTP_CORS)
	viper.BindEnv("server.httpVhosts", SERVER_HTTP_VHOSTS)

	c.HTTPEnabled = viper.GetBool("server.http")
	httpPath := viper.GetString("server.httpPath")
	if httpPath == "" {
		httpPath = "127.0.0.1:8545"
	}
	c.HTTPEndpoint = httpPath
	c.CORS = viper.GetStringSlice("server.httpCors")
	c.VHosts = viper.GetStringSlice("server.httpVhosts")
	if len(c.VHosts) == 0 {
		c.VHosts = []string{"localhost"}
	}

	c.WSEnabled = viper.GetBool("server.ws")
	wsPath := viper.GetString("server.wsPath")
	if wsPath == "" {
		wsPath = "127.0.0.1:8546"
	}
	c.WSEndpoint = wsPath

	c.IPCEnabled = viper.GetBool("server.ipc")
	ipcPath := viper.GetString("server.ipcPath")
	if ipcPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		ipcPath = filepath.Join(home, ".devnet/devnode.ipc")
	}
	c.IPCEndpoint = ipcPath

	c.GraphQLEnabled = viper.GetBool("server.graphql")
	c.GraphQLEndpoint = viper.GetString("server.graphqlPath")

	upstream, err := getUpstream(ctx)
	if err != nil {
		return nil, err
	}
	c.Upstream = upstream

	c.Node = devnode.NewConfig()
	if upstream != nil {
		c.Node.Upstream = upstream
	}
	return c, nil
}
