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

package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	ErrBlockNotFound = errors.New("block not found")
	ErrNoBaseFee     = errors.New("block has no baseFeePerGas")
)

// MismatchError reports two transaction sets that do not have the same
// members.
type MismatchError struct {
	Subject  string
	Expected []common.Hash
	Actual   []common.Hash
	Diff     string
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: expected %d members, got %d", e.Subject, len(e.Expected), len(e.Actual))
	if e.Diff != "" {
		fmt.Fprintf(&b, " (-expected +actual):\n%s", e.Diff)
	}
	return b.String()
}

var sortHashes = cmpopts.SortSlices(func(a, b common.Hash) bool {
	return bytes.Compare(a[:], b[:]) < 0
})

// sameMembers compares expected and actual as multisets.
func sameMembers(subject string, expected, actual []common.Hash) error {
	if diff := cmp.Diff(expected, actual, sortHashes, cmpopts.EquateEmpty()); diff != "" {
		return &MismatchError{
			Subject:  subject,
			Expected: expected,
			Actual:   actual,
			Diff:     diff,
		}
	}
	return nil
}
