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

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerc-io/eth-devnet-helpers/pkg/graphql"
	"github.com/cerc-io/eth-devnet-helpers/pkg/prom"
	srpc "github.com/cerc-io/eth-devnet-helpers/pkg/rpc"
	s "github.com/cerc-io/eth-devnet-helpers/pkg/serve"
)

var ErrNoRpcEndpoints = errors.New("no rpc endpoints is available")

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the in-memory stub node",
	Long: `Runs an in-memory stand-in for a Hardhat-style node answering the
eth, evm, hardhat, net, web3 and devnet namespaces over HTTP, WS and IPC.
It does not execute transactions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	serverConfig, err := s.NewConfig(ctx)
	if err != nil {
		return err
	}
	logWithCommand.Debugf("server config: %+v", serverConfig)
	server, err := s.NewServer(serverConfig)
	if err != nil {
		return err
	}

	wg := new(sync.WaitGroup)
	server.Serve(wg)
	defer wg.Wait()
	defer server.Stop()

	if err := startServers(server, serverConfig); err != nil {
		return err
	}
	graphQL, err := startStandaloneGraphQL(server, serverConfig)
	if err != nil {
		return err
	}
	if graphQL != nil {
		defer graphQL.Stop()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown
	return nil
}

func startServers(server s.Server, settings *s.Config) error {
	if !settings.HTTPEnabled && !settings.WSEnabled && !settings.IPCEnabled {
		return ErrNoRpcEndpoints
	}

	if settings.IPCEnabled {
		logWithCommand.Debug("starting up IPC server")
		_, _, err := srpc.StartIPCEndpoint(settings.IPCEndpoint, server.APIs())
		if err != nil {
			return err
		}
		logWithCommand.Infof("IPC endpoint opened at %s", settings.IPCEndpoint)
	} else {
		logWithCommand.Debug("IPC server is disabled")
	}

	if settings.WSEnabled {
		logWithCommand.Debug("starting up WS server")
		_, _, err := srpc.StartWSEndpoint(settings.WSEndpoint, server.APIs(), nil, []string{"*"})
		if err != nil {
			return err
		}
		logWithCommand.Infof("WS endpoint opened at ws://%s", settings.WSEndpoint)
	} else {
		logWithCommand.Debug("WS server is disabled")
	}

	if settings.HTTPEnabled {
		logWithCommand.Debug("starting up HTTP server")
		var routes []srpc.Route
		if settings.GraphQLEnabled && settings.GraphQLEndpoint == "" {
			handler, err := graphql.NewHandler(server.Backend())
			if err != nil {
				return err
			}
			routes = append(routes, srpc.Route{Path: "/graphql", Handler: handler})
		}
		if prom.Enabled() {
			routes = append(routes, srpc.Route{Path: "/metrics", Handler: prom.Handler()})
		}
		_, _, err := srpc.StartHTTPEndpoint(settings.HTTPEndpoint, server.APIs(), nil, settings.CORS, settings.VHosts, rpc.DefaultHTTPTimeouts, routes...)
		if err != nil {
			return err
		}
		logWithCommand.Infof("HTTP endpoint opened at http://%s", settings.HTTPEndpoint)
	} else {
		logWithCommand.Debug("HTTP server is disabled")
	}

	return nil
}

func startStandaloneGraphQL(server s.Server, settings *s.Config) (graphQLServer *graphql.Service, err error) {
	if !settings.GraphQLEnabled || settings.GraphQLEndpoint == "" {
		logWithCommand.Debug("standalone GraphQL server is disabled")
		return nil, nil
	}

	logWithCommand.Debug("starting up GraphQL server")
	graphQLServer, err = graphql.New(server.Backend(), settings.GraphQLEndpoint, settings.CORS, settings.VHosts, rpc.DefaultHTTPTimeouts)
	if err != nil {
		return nil, err
	}
	return graphQLServer, graphQLServer.Start()
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// flags for all config variables
	serveCmd.PersistentFlags().Bool("server-http", true, "turn http server on or off")
	serveCmd.PersistentFlags().String("server-http-path", "127.0.0.1:8545", "endpoint for http server")
	serveCmd.PersistentFlags().StringSlice("server-http-cors", nil, "allowed CORS origins")
	serveCmd.PersistentFlags().StringSlice("server-http-vhosts", []string{"localhost"}, "accepted virtual hosts")
	serveCmd.PersistentFlags().Bool("server-ws", false, "turn ws server on or off")
	serveCmd.PersistentFlags().String("server-ws-path", "127.0.0.1:8546", "endpoint for ws server")
	serveCmd.PersistentFlags().Bool("server-ipc", false, "turn ipc server on or off")
	serveCmd.PersistentFlags().String("server-ipc-path", "", "path for ipc server")
	serveCmd.PersistentFlags().Bool("server-graphql", false, "turn graphql on or off")
	serveCmd.PersistentFlags().String("server-graphql-path", "", "standalone graphql endpoint, mounted at /graphql on the http server when empty")
	serveCmd.PersistentFlags().String("server-upstream-url", "", "node answering net queries the stub cannot")
	serveCmd.PersistentFlags().Duration("server-upstream-timeout", 0, "timeout of upstream requests")

	serveCmd.PersistentFlags().Uint64("devnode-chain-id", 31337, "chain id")
	serveCmd.PersistentFlags().Bool("devnode-automine", false, "seal a block for every transaction")
	serveCmd.PersistentFlags().Uint64("devnode-gas-limit", 30_000_000, "block gas limit")
	serveCmd.PersistentFlags().Uint64("devnode-initial-base-fee", 1_000_000_000, "base fee of the genesis block")

	// and their bindings
	viper.BindPFlag("server.http", serveCmd.PersistentFlags().Lookup("server-http"))
	viper.BindPFlag("server.httpPath", serveCmd.PersistentFlags().Lookup("server-http-path"))
	viper.BindPFlag("server.httpCors", serveCmd.PersistentFlags().Lookup("server-http-cors"))
	viper.BindPFlag("server.httpVhosts", serveCmd.PersistentFlags().Lookup("server-http-vhosts"))
	viper.BindPFlag("server.ws", serveCmd.PersistentFlags().Lookup("server-ws"))
	viper.BindPFlag("server.wsPath", serveCmd.PersistentFlags().Lookup("server-ws-path"))
	viper.BindPFlag("server.ipc", serveCmd.PersistentFlags().Lookup("server-ipc"))
	viper.BindPFlag("server.ipcPath", serveCmd.PersistentFlags().Lookup("server-ipc-path"))
	viper.BindPFlag("server.graphql", serveCmd.PersistentFlags().Lookup("server-graphql"))
	viper.BindPFlag("server.graphqlPath", serveCmd.PersistentFlags().Lookup("server-graphql-path"))
	viper.BindPFlag("server.upstream.url", serveCmd.PersistentFlags().Lookup("server-upstream-url"))
	viper.BindPFlag("server.upstream.timeout", serveCmd.PersistentFlags().Lookup("server-upstream-timeout"))

	viper.BindPFlag("devnode.chainID", serveCmd.PersistentFlags().Lookup("devnode-chain-id"))
	viper.BindPFlag("devnode.automine", serveCmd.PersistentFlags().Lookup("devnode-automine"))
	viper.BindPFlag("devnode.gasLimit", serveCmd.PersistentFlags().Lookup("devnode-gas-limit"))
	viper.BindPFlag("devnode.initialBaseFee", serveCmd.PersistentFlags().Lookup("devnode-initial-base-fee"))
}
