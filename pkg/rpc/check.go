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
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
)

// checkModuleAvailability check that all names given in modules are actually
// available API services.
func checkModuleAvailability(modules []string, apis []rpc.API) (bad, available []string) {
	availableSet := make(map[string]struct{})
	for _, api := range apis {
		if _, ok := availableSet[api.Namespace]; !ok {
			availableSet[api.Namespace] = struct{}{}
			available = append(available, api.Namespace)
		}
	}
	for _, name := range modules {
		if _, ok := availableSet[name]; !ok {
			bad = append(bad, name)
		}
	}
	return bad, available
}

// NewServer registers the apis whose namespace is in modules, or every api
// when modules is empty.
func NewServer(transport string, apis []rpc.API, modules []string) (*rpc.Server, error) {
	if bad, available := checkModuleAvailability(modules, apis); len(bad) > 0 {
		log.WithField("unavailable", bad).WithField("available", available).
			Errorf("Unavailable modules in %s API list", transport)
	}
	whitelist := make(map[string]bool)
	for _, module := range modules {
		whitelist[module] = true
	}

	srv := rpc.NewServer()
	for _, api := range apis {
		if len(whitelist) > 0 && !whitelist[api.Namespace] {
			continue
		}
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			return nil, err
		}
		log.WithField("namespace", api.Namespace).Debugf("%s registered", transport)
	}
	return srv, nil
}
