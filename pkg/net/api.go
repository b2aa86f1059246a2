// VulcanizeDB
// Copyright © 2021 Vulcanize

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

package net

import (
	"context"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

// APIName is the namespace for the net api
const APIName = "net"

// PublicNetAPI is the net namespace API
type PublicNetAPI struct {
	networkVersion uint64
	// Optional upstream node asked for what we cannot answer locally
	upstream provider.Provider
}

// NewPublicNetAPI creates a PublicNetAPI for networkID, falling back to upstream when set
func NewPublicNetAPI(networkID uint64, upstream provider.Provider) *PublicNetAPI {
	return &PublicNetAPI{
		networkVersion: networkID,
		upstream:       upstream,
	}
}

// Listening returns an indication if the node is listening for network connections.
func (pna *PublicNetAPI) Listening() bool {
	return false // the stub never joins a p2p network
}

// PeerCount returns the number of connected peers
func (pna *PublicNetAPI) PeerCount(ctx context.Context) hexutil.Uint {
	if pna.upstream == nil {
		return 0
	}
	var num hexutil.Uint
	if err := pna.upstream.Request(ctx, &num, "net_peerCount"); err != nil {
		log.Debugx(ctx, "net_peerCount upstream: ", err)
		return 0
	}
	return num
}

// Version returns the network id as a decimal string.
func (pna *PublicNetAPI) Version(ctx context.Context) string {
	if pna.networkVersion != 0 || pna.upstream == nil {
		return strconv.FormatUint(pna.networkVersion, 10)
	}
	var version string
	if err := pna.upstream.Request(ctx, &version, "net_version"); err != nil {
		log.Debugx(ctx, "net_version upstream: ", err)
		return ""
	}
	return version
}
