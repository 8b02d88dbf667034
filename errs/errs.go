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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Code 是錯誤分類碼，讓呼叫端能判斷是哪一個前置條件被違反。
type Code uint8

const (
	CodeNone Code = iota
	// CodeInvalidWidth : 要求的位元寬度超出可精確表示的範圍 (> 53)
	CodeInvalidWidth
	// CodeNoSuitableParameters : 參數搜尋耗盡候選空間仍找不到合格常數
	CodeNoSuitableParameters
	// CodeDegenerateModulus : 模數 <= 1
	CodeDegenerateModulus
	// CodeEmptySample : 驗證器收到空樣本
	CodeEmptySample
	// CodeInvalidArgument : 其他輸入錯誤
	CodeInvalidArgument
)

var codeMap = map[Code]string{
	CodeNone:                 "",
	CodeInvalidWidth:         "invalid_width",
	CodeNoSuitableParameters: "no_suitable_parameters",
	CodeDegenerateModulus:    "degenerate_modulus",
	CodeEmptySample:          "empty_sample",
	CodeInvalidArgument:      "invalid_argument",
}

func (c Code) String() string {
	if str, ok := codeMap[c]; ok {
		return str
	}
	return ""
}

// 分類哨兵值，搭配 errors.Is 使用：errors.Is(err, errs.ErrInvalidWidth)
var (
	ErrInvalidWidth         = &E{Code: CodeInvalidWidth, ErrLv: Warn, Message: "invalid width"}
	ErrNoSuitableParameters = &E{Code: CodeNoSuitableParameters, ErrLv: Warn, Message: "no suitable parameters"}
	ErrDegenerateModulus    = &E{Code: CodeDegenerateModulus, ErrLv: Warn, Message: "degenerate modulus"}
	ErrEmptySample          = &E{Code: CodeEmptySample, ErrLv: Warn, Message: "empty sample"}
	ErrInvalidArgument      = &E{Code: CodeInvalidArgument, ErrLv: Warn, Message: "invalid argument"}
)

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；ErrLv 為嚴重度；Code 為分類碼（可為 CodeNone）。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
	Code    Code
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s", ErrLv(e.ErrLv))
	if e.Code != CodeNone {
		base += " code=" + e.Code.String()
	}
	base += " " + e.Message
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// Is 以分類碼比對：只要 target 是帶有相同 Code 的 *E 即視為同一類錯誤。
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok || t.Code == CodeNone {
		return false
	}
	return e.Code == t.Code
}

// New 依錯誤等級與訊息建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Codef 建立帶分類碼的錯誤，分類錯誤一律屬於輸入問題（Warn）。
func Codef(code Code, format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), ErrLv: Warn, Code: code}
}

func InvalidWidthf(format string, a ...any) *E {
	return Codef(CodeInvalidWidth, format, a...)
}

func NoSuitableParametersf(format string, a ...any) *E {
	return Codef(CodeNoSuitableParameters, format, a...)
}

func DegenerateModulusf(format string, a ...any) *E {
	return Codef(CodeDegenerateModulus, format, a...)
}

func EmptySamplef(format string, a ...any) *E {
	return Codef(CodeEmptySample, format, a...)
}

func InvalidArgumentf(format string, a ...any) *E {
	return Codef(CodeInvalidArgument, format, a...)
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// ErrLevel / Code 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv 與 Code（保持原本嚴重度與分類）。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	var e *E
	errLv := Fatal
	code := CodeNone
	if errors.As(cause, &e) {
		errLv = e.ErrLv
		code = e.Code
	}
	r := New(errLv, msg)
	r.Code = code
	r.Cause = cause
	return r
}

// WrapCode 把外部錯誤歸類為輸入問題：ErrLv 為 Warn，Code 為指定分類碼。
// 用於解析呼叫端提供的資料（設定檔、請求內容）失敗時。
func WrapCode(cause error, code Code, msg string) *E {
	r := Codef(code, "%s", msg)
	r.Cause = cause
	return r
}

// WrapWithExtra 同 Wrap，並附加上下文。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := Wrap(cause, msg)
	r.Extra = extra
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// CodeOf 取出錯誤鏈上第一個 *E 的分類碼，找不到時回傳 CodeNone。
func CodeOf(err error) Code {
	if e, ok := AsErr(err); ok {
		return e.Code
	}
	return CodeNone
}
