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

// Package engine 實作各演算法家族的生成器引擎。
//
// 每個引擎獨佔自己的狀態，單一呼叫端依序呼叫 Next() 推進；
// 相同常數與 seed 建立的兩個引擎輸出逐項相同。
// 引擎本身不做同步，跨 goroutine 共用需由外部加鎖。
package engine

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
)

// Kind 為引擎演算法家族。
type Kind uint8

const (
	KindLCG Kind = iota + 1
	KindMWC
	KindGaussian
	KindPolar
	KindTwoLane
	KindEndBiased
	KindMT19937
)

var kindName = map[Kind]string{
	KindLCG:       "lcg",
	KindMWC:       "mwc",
	KindGaussian:  "gaussian",
	KindPolar:     "polar",
	KindTwoLane:   "twolane",
	KindEndBiased: "endbiased",
	KindMT19937:   "mt19937",
}

func (k Kind) String() string {
	if s, ok := kindName[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind 不分大小寫
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindName {
		if name == s {
			return k, nil
		}
	}
	return 0, errs.InvalidArgumentf("unknown generator kind %q", s)
}

// Kinds 依定義順序回傳所有 Kind。
func Kinds() []Kind {
	return []Kind{KindLCG, KindMWC, KindGaussian, KindPolar, KindTwoLane, KindEndBiased, KindMT19937}
}

// Generator 為所有引擎的共同合約。
type Generator interface {
	Name() string
	Kind() Kind
	// Next 推進狀態並回傳新值。
	Next() float64
}

// IntGenerator 為輸出整數狀態的引擎 (LCG / MWC / MT19937)。
type IntGenerator interface {
	Generator
	NextUint64() uint64
}

// Uniform 為可提供 [0,1) 視圖的引擎。
type Uniform interface {
	Generator
	Float64() float64
}

// FirstRepeat 呼叫 next 最多 limit 次，回傳第一個重複值出現的位置（1-indexed）。
// 若 limit 內沒有重複，回傳 (limit, false)。
func FirstRepeat(next func() float64, limit int) (int, bool) {
	if limit <= 0 {
		return 0, false
	}
	seen := make(map[float64]struct{}, min(limit, 1<<16))
	for i := 1; i <= limit; i++ {
		v := next()
		if _, ok := seen[v]; ok {
			return i, true
		}
		seen[v] = struct{}{}
	}
	return limit, false
}
