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

package prom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"

	"github.com/cerc-io/eth-devnet-helpers/pkg/log"
)

const (
	headerOriginalRemoteAddr = "X-Original-Remote-Addr"
	batchMethod              = "batch"
	maxLoggedParams          = 250
)

type jsonrpcMessage struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Peek at the request and update the Context accordingly (eg, RPC method, request ID, etc.)
func prepareRequest(r *http.Request) (*http.Request, error) {
	uniqId, err := uuid.NewUUID()
	if nil != err {
		log.Error("Error generating ID: ", err)
		return nil, err
	}

	body, err := io.ReadAll(r.Body)
	if nil != err {
		log.Error("Error reading request body: ", err)
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var msg jsonrpcMessage
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '[':
		msg.Method = batchMethod
	default:
		if err := json.Unmarshal(body, &msg); err != nil {
			log.Error("Error parsing request body: ", err)
			return nil, err
		}
	}

	reqParams := string(msg.Params)
	if !log.IsLevelEnabled(log.TraceLevel) && len(reqParams) > maxLoggedParams {
		reqParams = reqParams[:maxLoggedParams] + "..."
	}
	conn := r.Header.Get(headerOriginalRemoteAddr)
	if len(conn) == 0 {
		conn = r.RemoteAddr
	}

	ctx := r.Context()
	ctx = log.WithValue(ctx, log.CtxKeyUniqId, uniqId.String())
	ctx = log.WithValue(ctx, log.CtxKeyRPCMethod, msg.Method)
	ctx = log.WithValue(ctx, log.CtxKeyRPCParams, reqParams)
	ctx = log.WithValue(ctx, log.CtxKeyRPCReqId, strings.Trim(string(msg.ID), `"`))
	ctx = log.WithValue(ctx, log.CtxKeyConn, conn)

	return r.WithContext(ctx), nil
}

// HTTPMiddleware http connection metric reader
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r, err := prepareRequest(r)
		if nil != err {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		rpcMethod := fmt.Sprintf("%s", ctx.Value(log.CtxKeyRPCMethod))

		if metrics {
			httpCount.WithLabelValues(rpcMethod).Inc()
		}

		log.Debugx(ctx, "START")
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Debugxf(log.WithValue(ctx, log.CtxKeyDuration, duration.Milliseconds()), "END")

		if metrics {
			httpDuration.WithLabelValues(rpcMethod).Observe(duration.Seconds())
		}
	})
}

// WSMiddleware websocket connection counter
func WSMiddleware(next http.Handler) http.Handler {
	if !metrics {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsCount.Inc()
		next.ServeHTTP(w, r)
		wsCount.Dec()
	})
}

// IPCMiddleware unix-socket connection counter
func IPCMiddleware(server *rpc.Server, client rpc.Conn) {
	if metrics {
		ipcCount.Inc()
	}
	server.ServeCodec(rpc.NewCodec(client), 0)
	if metrics {
		ipcCount.Dec()
	}
}
