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

// Package server 組裝 prnglab 的 HTTP 服務：驗證 SvrCfg、建立 NetSvr、註冊路由並交給 app 管理生命週期。
//
// 所有依賴（logger、Registry、位址）都透過 svrcfg.SvrCfg 明確注入，本套件不讀檔案或環境變數。
// 需要把路由掛到既有服務時，直接呼叫 api.RegisterRoutes 即可。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/api"
	"github.com/zintix-labs/prnglab/server/app"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// Run 以預設 chi server 監聽 sCfg.Addr，直到收到 SIGINT / SIGTERM。
func Run(sCfg *svrcfg.SvrCfg) error {
	return RunContext(context.Background(), sCfg)
}

// RunContext 與 Run 相同，ctx 結束時也會觸發 graceful shutdown。
func RunContext(ctx context.Context, sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// 外層傳入的 logger 可能不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(ctx, sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 允許呼叫端注入自訂的 NetSvr，例如額外的 server option 或其他框架的 adapter。
// ctx 結束或收到 SIGINT / SIGTERM 時優雅關閉。
//
// svr 必須非 nil；若為 *netsvr.ChiAdapter 則要求 Ready() 為 true。
func RunWithSvr(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes", slog.Any("err", err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.NewWith(svr).SetLogger(sCfg.Log)
	if s, ok := svr.(*netsvr.ChiAdapter); ok {
		sCfg.Log.Info("[prnglab] listening on http://localhost" + s.Address())
	} else {
		sCfg.Log.Info("[prnglab] listening")
	}
	if err := a.RunContext(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
