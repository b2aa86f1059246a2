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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type ctxKey string

const (
	CtxKeyRPCMethod   ctxKey = "rpc_method"
	CtxKeyRPCParams   ctxKey = "rpc_params"
	CtxKeyRPCReqId    ctxKey = "rpc_reqid"
	CtxKeyBlockNumber ctxKey = "block_num"
	CtxKeyTxHash      ctxKey = "tx_hash"
	CtxKeyConn        ctxKey = "conn"
	CtxKeyDuration    ctxKey = "duration"
	CtxKeyError       ctxKey = "err"
	CtxKeyUniqId      ctxKey = "uuid"
)

var registeredKeys = []ctxKey{
	CtxKeyRPCMethod,
	CtxKeyRPCParams,
	CtxKeyRPCReqId,
	CtxKeyBlockNumber,
	CtxKeyTxHash,
	CtxKeyConn,
	CtxKeyDuration,
	CtxKeyError,
	CtxKeyUniqId,
}

const FatalLevel = logrus.FatalLevel
const ErrorLevel = logrus.ErrorLevel
const WarnLevel = logrus.WarnLevel
const InfoLevel = logrus.InfoLevel
const DebugLevel = logrus.DebugLevel
const TraceLevel = logrus.TraceLevel

type Entry = logrus.Entry
type Level = logrus.Level

// WithValue returns a copy of ctx carrying a registered logging field.
func WithValue(ctx context.Context, key ctxKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithFieldsFromContext returns an entry holding every registered key found in ctx.
func WithFieldsFromContext(ctx context.Context) *Entry {
	entry := logrus.WithContext(ctx)

	for _, key := range registeredKeys {
		if value := ctx.Value(key); value != nil {
			entry = entry.WithField(string(key), value)
		}
	}
	return entry
}

func Errorx(ctx context.Context, args ...interface{}) {
	WithFieldsFromContext(ctx).Error(args...)
}

func Warnx(ctx context.Context, args ...interface{}) {
	WithFieldsFromContext(ctx).Warn(args...)
}

func Infox(ctx context.Context, args ...interface{}) {
	WithFieldsFromContext(ctx).Info(args...)
}

func Debugx(ctx context.Context, args ...interface{}) {
	WithFieldsFromContext(ctx).Debug(args...)
}

func Tracex(ctx context.Context, args ...interface{}) {
	WithFieldsFromContext(ctx).Trace(args...)
}

func Debugxf(ctx context.Context, format string, args ...interface{}) {
	WithFieldsFromContext(ctx).Debugf(format, args...)
}

func Fatal(args ...interface{}) {
	logrus.Fatal(args...)
}

func Error(args ...interface{}) {
	logrus.Error(args...)
}

func Warn(args ...interface{}) {
	logrus.Warn(args...)
}

func Info(args ...interface{}) {
	logrus.Info(args...)
}

func Debug(args ...interface{}) {
	logrus.Debug(args...)
}

func Fatalf(format string, args ...interface{}) {
	logrus.Fatalf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}

func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

func SetLevel(lvl Level) {
	logrus.SetLevel(lvl)
}

func IsLevelEnabled(lvl Level) bool {
	return logrus.IsLevelEnabled(lvl)
}

func WithError(err error) *Entry {
	return logrus.WithError(err)
}

func WithField(field string, value interface{}) *Entry {
	return logrus.WithField(field, value)
}

// Init configures output, level and formatter from viper.
func Init() error {
	viper.BindEnv("log.file", "LOGRUS_FILE")
	logFile := viper.GetString("log.file")
	if logFile != "" {
		file, err := os.OpenFile(logFile,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err == nil {
			Infof("Directing output to %s", logFile)
			SetOutput(file)
		} else {
			SetOutput(os.Stdout)
			Info("Failed to log to file, using default stdout")
		}
	} else {
		SetOutput(os.Stdout)
	}

	viper.BindEnv("log.level", "LOGRUS_LEVEL")
	lvlStr := viper.GetString("log.level")
	if lvlStr == "" {
		lvlStr = InfoLevel.String()
	}
	lvl, err := logrus.ParseLevel(lvlStr)
	if err != nil {
		return err
	}
	SetLevel(lvl)

	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	// File/line only at trace level.
	if lvl >= TraceLevel {
		logrus.SetReportCaller(true)

		// Skip this wrapper, logrus and the runtime so the caller is the real call site.
		formatter.CallerPrettyfier = func(frame *runtime.Frame) (function string, file string) {
			pcs := make([]uintptr, 50)
			_ = runtime.Callers(0, pcs)
			frames := runtime.CallersFrames(pcs)

			for next, again := frames.Next(); again; next, again = frames.Next() {
				if !strings.Contains(next.File, "sirupsen/logrus") &&
					!strings.HasPrefix(next.Function, "runtime.") &&
					!strings.Contains(next.File, "eth-devnet-helpers/pkg/log") {
					return next.Function, fmt.Sprintf("%s:%d", next.File, next.Line)
				}
			}

			return frame.Function, fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
	}

	logrus.SetFormatter(formatter)
	Info("Log level set to ", lvl.String())
	return nil
}
