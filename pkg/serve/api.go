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
	"github.com/cerc-io/eth-devnet-helpers/pkg/devnode"
)

// APIName is the namespace of the stub node's control API
const APIName = "devnet"

// PublicServerAPI lets tests inspect and steer the stub node over RPC
type PublicServerAPI struct {
	w Server
}

// NewPublicServerAPI creates a new PublicServerAPI with the provided underlying Server process
func NewPublicServerAPI(w Server) *PublicServerAPI {
	return &PublicServerAPI{w: w}
}

// Requests returns every call the node has answered since the last reset
func (api *PublicServerAPI) Requests() []devnode.Request {
	return api.w.Backend().Requests()
}

// ResetRequests forgets the recorded calls
func (api *PublicServerAPI) ResetRequests() bool {
	api.w.Backend().ResetRequests()
	return true
}

// SetAutomine toggles sealing a block per accepted transaction
func (api *PublicServerAPI) SetAutomine(on bool) bool {
	api.w.Backend().SetAutomine(on)
	return true
}
