// VulcanizeDB
// Copyright © 2020 Vulcanize

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

package graphql

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
)

// Service encapsulates a standalone GraphQL service.
type Service struct {
	endpoint string           // The host:port endpoint for this service.
	cors     []string         // Allowed CORS domains
	vhosts   []string         // Recognised vhosts
	timeouts rpc.HTTPTimeouts // Timeout settings for HTTP requests.
	backend  Backend          // The backend that queries will operate on.
	handler  http.Handler     // The `http.Handler` used to answer queries.
	listener net.Listener     // The listening socket.
}

// New constructs a new GraphQL service instance.
func New(backend Backend, endpoint string, cors, vhosts []string, timeouts rpc.HTTPTimeouts) (*Service, error) {
	handler, err := NewHandler(backend)
	if err != nil {
		return nil, err
	}
	return &Service{
		endpoint: endpoint,
		cors:     cors,
		vhosts:   vhosts,
		timeouts: timeouts,
		backend:  backend,
		handler:  handler,
	}, nil
}

// Start opens the listener and serves /graphql on it.
func (s *Service) Start() error {
	router := mux.NewRouter()
	router.Handle("/graphql", s.handler)
	router.Handle("/graphql/", s.handler)

	listener, err := net.Listen("tcp", s.endpoint)
	if err != nil {
		return err
	}
	s.listener = listener

	srv := &http.Server{
		Handler:      node.NewHTTPHandlerStack(router, s.cors, s.vhosts, nil),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, net.ErrClosed) {
			log.WithError(err).Error("graphQL endpoint stopped")
		}
	}()
	log.Infof("graphQL endpoint opened for url %s", s.URL())
	return nil
}

// URL is the query endpoint of a started service.
func (s *Service) URL() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s/graphql", s.listener.Addr())
}

// NewHandler returns a new `http.Handler` that will answer GraphQL queries.
func NewHandler(backend Backend) (http.Handler, error) {
	q := Resolver{backend}

	s, err := graphql.ParseSchema(schema, &q)
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: s}, nil
}

// Stop closes the listener.
func (s *Service) Stop() error {
	if s.listener != nil {
		addr := s.listener.Addr()
		s.listener.Close()
		s.listener = nil
		log.Debugf("graphQL endpoint closed for url http://%s", addr)
	}
	return nil
}
