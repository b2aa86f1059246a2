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

package rpc

import (
	"errors"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/prom"
)

// Route is an extra handler served next to JSON-RPC on the HTTP endpoint.
type Route struct {
	Path    string
	Handler http.Handler
}

// NewHandler mounts srv at / behind the cors/vhosts filters and the metrics
// middleware, plus any extra routes.
func NewHandler(srv *rpc.Server, cors []string, vhosts []string, routes ...Route) http.Handler {
	router := mux.NewRouter()
	for _, route := range routes {
		router.Handle(route.Path, route.Handler)
	}
	router.Handle("/", node.NewHTTPHandlerStack(prom.HTTPMiddleware(srv), cors, vhosts, nil))
	return router
}

// StartHTTPEndpoint starts the HTTP RPC endpoint, configured with cors/vhosts/modules.
func StartHTTPEndpoint(endpoint string, apis []rpc.API, modules []string, cors []string, vhosts []string, timeouts rpc.HTTPTimeouts, routes ...Route) (net.Listener, *rpc.Server, error) {
	handler, err := NewServer("HTTP", apis, modules)
	if err != nil {
		return nil, nil, err
	}

	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, nil, err
	}
	httpServer := &http.Server{
		Handler:      NewHandler(handler, cors, vhosts, routes...),
		ReadTimeout:  timeouts.ReadTimeout,
		WriteTimeout: timeouts.WriteTimeout,
		IdleTimeout:  timeouts.IdleTimeout,
	}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, net.ErrClosed) {
			log.WithError(err).WithField("endpoint", endpoint).Error("HTTP endpoint stopped")
		}
	}()
	return listener, handler, nil
}
