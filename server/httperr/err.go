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

// Package httperr 把 errs.E 映射成 HTTP 回應。放在 server 層，核心 errs 不依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/prnglab/errs"
)

// Body 為錯誤回應的 JSON 內容。
type Body struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Level string `json:"level,omitempty"`
}

// StatusCode 將錯誤映射成 HTTP status code：
//   - ctx timeout / cancel → 504 / 408
//   - errs.Warn            → 400（請求或參數問題，包含所有分類碼錯誤）
//   - errs.Fatal 與其他    → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	var e *errs.E
	if errors.As(err, &e) && e.ErrLv == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Errs 以 JSON 寫回錯誤；err 為 nil 時不動作。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	body := Body{Error: err.Error()}
	var e *errs.E
	if errors.As(err, &e) {
		if c := errs.CodeOf(err); c != errs.CodeNone {
			body.Code = c.String()
		}
		body.Level = errs.ErrLv(e.ErrLv)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(StatusCode(err))
	_ = json.NewEncoder(w).Encode(body)
}

// MethodNotAllowed 寫回 405。
func MethodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_ = json.NewEncoder(w).Encode(Body{Error: "method not allowed"})
}

// NotFound 寫回 404。
func NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(Body{Error: "not found"})
}

// Log 只記錄伺服端需要關注的錯誤：5xx 記 Error，408 記 Warn，其餘 4xx 不記。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status >= 500:
		log.Error(msg, slog.Any("err", err), slog.Int("status", status))
	case status == http.StatusRequestTimeout:
		log.Warn(msg, slog.Any("err", err), slog.Int("status", status))
	}
}
