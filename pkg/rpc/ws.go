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

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/prom"
)

// StartWSEndpoint starts a websocket endpoint.
func StartWSEndpoint(endpoint string, apis []rpc.API, modules []string, wsOrigins []string) (net.Listener, *rpc.Server, error) {
	handler, err := NewServer("WS", apis, modules)
	if err != nil {
		return nil, nil, err
	}

	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, nil, err
	}

	wsServer := &http.Server{Handler: prom.WSMiddleware(handler.WebsocketHandler(wsOrigins))}
	go func() {
		if err := wsServer.Serve(listener); err != nil && !errors.Is(err, net.ErrClosed) {
			log.WithError(err).WithField("endpoint", endpoint).Error("WS endpoint stopped")
		}
	}()

	return listener, handler, nil
}
