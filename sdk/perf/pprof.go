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

// Package perf 包裝 runtime/pprof，讓 CLI 以單一 flag 對任一段工作做 profiling。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/prnglab/errs"
)

// DefaultDir 為 pprof 檔案寫入路徑
const DefaultDir = "build/profiling"

// Profile 種類
const (
	ModeNone   = ""
	ModeCPU    = "cpu"
	ModeHeap   = "heap"
	ModeAllocs = "allocs"
)

// RunPProf 依 mode 執行 exe 並把 profile 寫到 dir/<mode>.pprof；mode 為空時直接執行。
// 回傳 exe 的錯誤，或 profile 寫出失敗的錯誤。
func RunPProf(dir, mode string, exe func() error) error {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case ModeNone:
		return exe()
	case ModeCPU, ModeHeap, ModeAllocs:
	default:
		return errs.InvalidArgumentf("unknown pprof mode %q (cpu|heap|allocs)", mode)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create pprof dir")
	}
	path := filepath.Join(dir, mode+".pprof")
	switch mode {
	case ModeCPU:
		return PProfCPU(path, exe)
	case ModeHeap:
		return PProfHeap(path, exe)
	default:
		return PProfAllocs(path, exe)
	}
}

// PProfCPU 在 exe 執行期間記錄 CPU profile，也可作為 pgo 的輸入。
//
// Usage like:
//
//	prnglab audit -p cpu
func PProfCPU(path string, exe func() error) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create cpu profile")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()

	return exe()
}

// PProfHeap 會在 exe() 執行完後，寫出一次 Heap Snapshot（in-use memory）。
// 寫出前先呼叫 runtime.GC()，讓快照貼近 live objects。
func PProfHeap(path string, exe func() error) error {
	runErr := exe()

	runtime.GC()
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create heap profile")
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errs.Wrap(err, "write heap profile")
	}
	return runErr
}

// PProfAllocs 會在 exe() 後寫出「累積配置」(allocs) Profile，
// 需要搭配 -alloc_space / -alloc_objects 指標查看。
func PProfAllocs(path string, exe func() error) error {
	runErr := exe()

	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create allocs profile")
	}
	defer f.Close()
	if prof := pprof.Lookup("allocs"); prof != nil {
		if err := prof.WriteTo(f, 0); err != nil {
			return errs.Wrap(err, "write allocs profile")
		}
	}
	return runErr
}
