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
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/cerc-io/eth-devnet-helpers/pkg/provider"
)

var ErrNoProvider = errors.New("UseHelpers has to be called after UseProvider")

// Env is the per-test state shared between a suite's lifecycle hooks and its
// specs. The embedded Helpers are only set while a spec runs.
type Env struct {
	Provider provider.Provider
	*Helpers

	// Options are passed to New on every Install.
	Options []Option
}

// Install binds fresh helpers to the environment's provider.
func (env *Env) Install() error {
	if env.Provider == nil {
		return ErrNoProvider
	}
	env.Helpers = New(env.Provider, env.Options...)
	return nil
}

// Uninstall removes the helpers installed by Install.
func (env *Env) Uninstall() {
	if env.Helpers != nil {
		env.Helpers.Close()
	}
	env.Helpers = nil
}

// UseProvider dials a provider before each spec and closes it afterwards
// when it has a Close method.
func UseProvider(env *Env, dial func(ctx context.Context) (provider.Provider, error)) {
	ginkgo.BeforeEach(func(ctx ginkgo.SpecContext) {
		p, err := dial(ctx)
		if err != nil {
			ginkgo.Fail("dial provider: " + err.Error())
		}
		env.Provider = p

		ginkgo.DeferCleanup(func() {
			if c, ok := p.(interface{ Close() }); ok {
				c.Close()
			}
			env.Provider = nil
		})
	})
}

// UseHelpers installs helpers on env before each spec and removes them after.
// It must be registered after UseProvider.
func UseHelpers(env *Env) {
	ginkgo.BeforeEach(env.installOrFail)
	ginkgo.AfterEach(env.Uninstall)
}

// installOrFail fails the running spec through gomega when Install errors.
func (env *Env) installOrFail() {
	gomega.Expect(env.Install()).To(gomega.Succeed())
}
