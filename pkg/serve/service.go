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
	"sync"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
)

// Server runs a stub node and hands its APIs to the transports
type Server interface {
	Stop() error
	APIs() []rpc.API
	// Blocks the wait group until Stop is called
	Serve(wg *sync.WaitGroup)
	// Backend exposes the stub node
	Backend() *devnode.Node
}

// Service is the underlying struct for the stub node server
type Service struct {
	// Used to sync access to QuitChan
	sync.Mutex
	// Used to signal shutdown of the service
	QuitChan chan bool
	// the stub node
	node *devnode.Node
	// closed on Stop, if set
	upstream interface{ Close() }
}

// NewServer creates a new Server using an underlying Service struct
func NewServer(settings *Config) (Server, error) {
	sap := new(Service)
	sap.QuitChan = make(chan bool)
	sap.node = devnode.New(settings.Node)
	if settings.Upstream != nil {
		sap.upstream = settings.Upstream
	}
	return sap, nil
}

// APIs returns the RPC descriptors the stub node offers
func (sap *Service) APIs() []rpc.API {
	return append(sap.node.APIs(), rpc.API{
		Namespace: APIName,
		Service:   NewPublicServerAPI(sap),
	})
}

// Serve holds wg until the service is stopped
func (sap *Service) Serve(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-sap.QuitChan
		log.Info("quitting stub node process")
	}()
	log.Info("stub node process successfully spun up")
}

// Stop is used to close down the service
func (sap *Service) Stop() error {
	log.Infof("stopping stub node")
	sap.Lock()
	defer sap.Unlock()
	select {
	case <-sap.QuitChan:
	default:
		close(sap.QuitChan)
	}
	if sap.upstream != nil {
		sap.upstream.Close()
		sap.upstream = nil
	}
	return nil
}

// Backend exposes the stub node
func (sap *Service) Backend() *devnode.Node {
	return sap.node
}
