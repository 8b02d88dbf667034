// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package svrcfg

import (
	"log/slog"
	"strings"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/logger"
)

// 單次請求可取的樣本數上限
const (
	DefaultMaxSamples = 10_000
	HardMaxSamples    = 1_000_000
)

// DefaultAddr 為預設監聽位址。
const DefaultAddr = ":5808"

type SvrCfg struct {
	Log        *slog.Logger
	Addr       string
	MaxSamples int
	Registry   *prnglab.Registry
}

// Valid 補上預設值並檢查必要依賴。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log = logger.NewSilent()
	}
	sc.Addr = strings.TrimSpace(sc.Addr)
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if !strings.Contains(sc.Addr, ":") {
		return errs.InvalidArgumentf("addr %q must be host:port or :port", sc.Addr)
	}
	if sc.MaxSamples <= 0 {
		sc.MaxSamples = DefaultMaxSamples
	}
	sc.MaxSamples = min(HardMaxSamples, sc.MaxSamples)
	if sc.Registry == nil {
		return errs.NewFatal("registry is required")
	}
	return nil
}
