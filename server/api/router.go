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

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	v1 "github.com/zintix-labs/prnglab/server/api/v1"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/netsvr/middleware"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// Route 描述一條已註冊的路由，供主頁列出。
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Routes 為 v1 提供的全部路由。
var Routes = []Route{
	{http.MethodGet, "/v1/generators"},
	{http.MethodPost, "/v1/generators"},
	{http.MethodGet, "/v1/generators/{name}/next"},
	{http.MethodDelete, "/v1/generators/{name}"},
	{http.MethodGet, "/v1/params/lcg"},
	{http.MethodGet, "/v1/params/mwc"},
	{http.MethodPost, "/v1/validate"},
}

// RegisterRoutes 註冊 middleware、主頁與 v1 api。sCfg 需先通過 Valid。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewHandler(sCfg)
	if err != nil {
		return err
	}
	registerMiddleware(svr, sCfg.Log) // 1. 註冊 middleware
	registerIndex(svr)                // 2. 註冊主頁
	registerV1API(svr, h)             // 3. 註冊 v1 api
	return nil
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

// 註冊主頁
func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": "prnglab",
			"routes":  Routes,
		})
	})
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetSvr, h *v1.Handler) {
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/generators", h.ListGenerators)
		vOne.Post("/generators", h.CreateGenerator)
		vOne.Get("/generators/{name}/next", h.Next)
		vOne.Delete("/generators/{name}", h.DeleteGenerator)

		vOne.Get("/params/lcg", h.LCGParams)
		vOne.Get("/params/mwc", h.MWCParams)

		vOne.Post("/validate", h.Validate)
	})
}
