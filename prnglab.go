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

// Package prnglab 提供生成器註冊表（Registry）：以名稱管理各種引擎實例，並提供常用取樣入口。
//
// Registry 把三個地基組裝在一起：
//  1. PRNGFactory：為每個需要均勻來源的引擎（Gaussian / Polar / EndBiased）建立獨立的 PRNG。
//  2. seedMaker：由單一基底 seed 派生所有引擎的 seed，同一個基底 seed 下整份 Registry 可完整重現。
//  3. 具名生成器表：同名建立會直接取代舊的實例。
//
// New 會預先建立兩個生成器：
//   - "seeded"：由合成器推導（16-bit 寬度）的 LCG
//   - "random"：Gaussian(50, 15)
//
// 注意：Registry 不是 goroutine-safe；多執行緒存取需由呼叫端自行加鎖（見 server/api）。
// 所有引擎都不是密碼學安全的。
package prnglab

import (
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"

	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/sdk/engine"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

// 預設生成器名稱
const (
	SeededName = "seeded"
	RandomName = "random"
)

// 預設生成器參數
const (
	SeededWidth   = 16
	SeededSeedMin = 1000
	SeededSeedMax = 10000
	RandomMean    = 50
	RandomStdDev  = 15
)

// Entry 為 Registry 中的一筆具名生成器。
type Entry struct {
	Name      string           `json:"name"             yaml:"name"`
	Kind      string           `json:"kind"             yaml:"kind"`
	Params    any              `json:"params,omitempty" yaml:"params,omitempty"`
	Generator engine.Generator `json:"-"                yaml:"-"`
}

// Registry 持有具名生成器與其亂數地基。
type Registry struct {
	gens    map[string]Entry
	factory core.PRNGFactory
	core    *core.Core
	sm      *seedMaker
	seed    int64
	log     *slog.Logger
}

// Option 設定 Registry 的建立參數。
type Option func(*options)

type options struct {
	seed    *int64
	factory core.PRNGFactory
	log     *slog.Logger
}

// WithSeed 指定基底 seed；未指定時以 crypto/rand 產生。
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithFactory 指定 PRNG 工廠；未指定時使用 core.Default()（PCG64）。
func WithFactory(f core.PRNGFactory) Option {
	return func(o *options) { o.factory = f }
}

// WithLogger 注入 logger；未指定時不輸出任何日誌。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New 建立 Registry 並建立預設生成器 "seeded" 與 "random"。
func New(opts ...Option) (*Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.factory == nil {
		o.factory = core.Default()
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	if o.seed == nil {
		s, err := cryptoSeed()
		if err != nil {
			return nil, err
		}
		o.seed = &s
	}

	r := &Registry{
		gens:    make(map[string]Entry, 8),
		factory: o.factory,
		sm:      newSeedMaker(*o.seed),
		seed:    *o.seed,
		log:     o.log,
	}
	r.core = core.New(r.factory.New(r.sm.next()))
	if err := r.createDefaults(); err != nil {
		return nil, err
	}
	r.log.Debug("registry ready", "seed", r.seed, "generators", len(r.gens))
	return r, nil
}

func (r *Registry) createDefaults() error {
	ps, err := r.core.UniformRange(SeededSeedMin, SeededSeedMax)
	if err != nil {
		return err
	}
	p, err := synth.GenerateLCGParams(uint64(ps), SeededWidth)
	if err != nil {
		return errs.Wrap(err, "create default seeded lcg")
	}
	s, err := r.core.UniformRange(1, int64(p.Modulus)-1)
	if err != nil {
		return err
	}
	if _, err := r.CreateLCGFromParams(SeededName, p, uint64(s)); err != nil {
		return errs.Wrap(err, "create default seeded lcg")
	}
	if _, err := r.CreateGaussian(RandomName, RandomMean, RandomStdDev); err != nil {
		return errs.Wrap(err, "create default random gaussian")
	}
	return nil
}

// put 以同名取代的語意寫入生成器表
func (r *Registry) put(g engine.Generator, params any) {
	name := g.Name()
	_, replaced := r.gens[name]
	r.gens[name] = Entry{Name: name, Kind: g.Kind().String(), Params: params, Generator: g}
	r.log.Debug("generator created", "name", name, "kind", g.Kind().String(), "replaced", replaced)
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.InvalidArgumentf("generator name required")
	}
	return nil
}

// source 由工廠建立一個新的均勻來源，seed 由 seedMaker 派生。
func (r *Registry) source() core.PRNG {
	return r.factory.New(r.sm.next())
}

// ============================================================
// ** Create **
// ============================================================

// CreateLCG 以 (a, c, m, seed) 建立 LCG。
func (r *Registry) CreateLCG(name string, a, c, m, seed uint64) (*engine.LCG, error) {
	return r.CreateLCGFromParams(name, synth.LCGParams{Multiplier: a, Increment: c, Modulus: m}, seed)
}

// CreateLCGFromParams 以合成器產出的常數建立 LCG。
func (r *Registry) CreateLCGFromParams(name string, p synth.LCGParams, seed uint64) (*engine.LCG, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewLCGFromParams(name, p, seed)
	if err != nil {
		return nil, err
	}
	r.put(g, g.Params())
	return g, nil
}

// CreateMWC 以 (a, c, seed) 建立 MWC。
func (r *Registry) CreateMWC(name string, a, c, seed uint32) (*engine.MWC, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewMWC(name, a, c, seed)
	if err != nil {
		return nil, err
	}
	r.put(g, synth.MWCParams{Multiplier: a, Carry: c})
	return g, nil
}

// CreateGaussian 建立 Box-Muller Gaussian(mean, stdDev)。
func (r *Registry) CreateGaussian(name string, mean, stdDev float64) (*engine.Gaussian, error) {
	return r.createGaussian(name, mean, stdDev, r.source())
}

func (r *Registry) createGaussian(name string, mean, stdDev float64, src core.RAND) (*engine.Gaussian, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewGaussian(name, mean, stdDev, src)
	if err != nil {
		return nil, err
	}
	r.put(g, config.NormalSetting{Mean: mean, StdDev: stdDev})
	return g, nil
}

// CreatePolar 建立 Marsaglia polar 常態生成器；fold 為 true 時回傳絕對值。
func (r *Registry) CreatePolar(name string, mean, stdDev float64, fold bool) (*engine.Polar, error) {
	return r.createPolar(name, mean, stdDev, fold, r.source())
}

func (r *Registry) createPolar(name string, mean, stdDev float64, fold bool, src core.RAND) (*engine.Polar, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewPolar(name, mean, stdDev, fold, src)
	if err != nil {
		return nil, err
	}
	r.put(g, config.NormalSetting{Mean: mean, StdDev: stdDev, Fold: fold})
	return g, nil
}

// CreateTwoLane 建立雙通道圖表生成器。
func (r *Registry) CreateTwoLane(name string, s1, s2 uint32) (*engine.TwoLane, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewTwoLane(name, s1, s2)
	if err != nil {
		return nil, err
	}
	r.put(g, config.TwoLaneSetting{Lane1: s1, Lane2: s2})
	return g, nil
}

// CreateEndBiased 建立兩端加權的均勻生成器。
func (r *Registry) CreateEndBiased(name string) (*engine.EndBiased, error) {
	return r.createEndBiased(name, r.source())
}

func (r *Registry) createEndBiased(name string, src core.RAND) (*engine.EndBiased, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g, err := engine.NewEndBiased(name, src)
	if err != nil {
		return nil, err
	}
	r.put(g, nil)
	return g, nil
}

// CreateMT19937 建立 Mersenne Twister 生成器。
func (r *Registry) CreateMT19937(name string, seed uint64) (*engine.MT19937, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	g := engine.NewMT19937(name, seed)
	r.put(g, nil)
	return g, nil
}

// CreateFromSetting 依設定建立生成器。設定未指定 seed 時由基底 seed 派生。
func (r *Registry) CreateFromSetting(gs *config.GeneratorSetting) (engine.Generator, error) {
	if gs == nil {
		return nil, errs.InvalidArgumentf("generator setting required")
	}
	if gs.ParsedKind() == 0 {
		if err := gs.Init(); err != nil {
			return nil, err
		}
	}
	seed := func() uint64 {
		if gs.Seed != nil {
			return *gs.Seed
		}
		return r.sm.nextUint64()
	}
	src := func() core.RAND {
		if gs.Seed != nil {
			return r.factory.New(int64(*gs.Seed))
		}
		return r.source()
	}

	switch gs.ParsedKind() {
	case engine.KindLCG:
		p, err := gs.LCG.LCGParams()
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("generator %q", gs.Name))
		}
		s := seed()
		if gs.Seed == nil && p.Modulus > 0 {
			s %= p.Modulus
		}
		return r.CreateLCGFromParams(gs.Name, p, s)
	case engine.KindMWC:
		p, err := gs.MWC.MWCParams()
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("generator %q", gs.Name))
		}
		return r.CreateMWC(gs.Name, p.Multiplier, p.Carry, uint32(seed()))
	case engine.KindGaussian:
		return r.createGaussian(gs.Name, gs.Normal.Mean, gs.Normal.StdDev, src())
	case engine.KindPolar:
		return r.createPolar(gs.Name, gs.Normal.Mean, gs.Normal.StdDev, gs.Normal.Fold, src())
	case engine.KindTwoLane:
		l1, l2 := gs.TwoLane.Lane1, gs.TwoLane.Lane2
		if l1 == 0 && l2 == 0 {
			l1, l2 = r.sm.nextLane(), r.sm.nextLane()
		}
		return r.CreateTwoLane(gs.Name, l1, l2)
	case engine.KindEndBiased:
		return r.createEndBiased(gs.Name, src())
	case engine.KindMT19937:
		return r.CreateMT19937(gs.Name, seed())
	}
	return nil, errs.InvalidArgumentf("generator %q: unsupported kind %s", gs.Name, gs.ParsedKind())
}

// CreateFromJSON 以 JSON 生成器設定建立生成器。
func (r *Registry) CreateFromJSON(raw []byte) (engine.Generator, error) {
	gs, err := config.GetGeneratorSettingByJSON(raw)
	if err != nil {
		return nil, err
	}
	return r.CreateFromSetting(gs)
}

// CreateFromYAML 以 YAML 生成器設定建立生成器。
func (r *Registry) CreateFromYAML(raw []byte) (engine.Generator, error) {
	gs, err := config.GetGeneratorSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	return r.CreateFromSetting(gs)
}

// ============================================================
// ** Lookup **
// ============================================================

// Get 依名稱取得生成器。
func (r *Registry) Get(name string) (engine.Generator, bool) {
	e, ok := r.gens[name]
	return e.Generator, ok
}

// Entry 依名稱取得完整的註冊資訊。
func (r *Registry) Entry(name string) (Entry, bool) {
	e, ok := r.gens[name]
	return e, ok
}

// Remove 移除生成器，回傳是否存在。
func (r *Registry) Remove(name string) bool {
	_, ok := r.gens[name]
	delete(r.gens, name)
	return ok
}

// Names 回傳排序後的生成器名稱。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.gens))
	for n := range r.gens {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Entries 回傳依名稱排序的註冊資訊。
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.gens))
	for _, n := range r.Names() {
		out = append(out, r.gens[n])
	}
	return out
}

// Seeded 回傳預設的 "seeded" 生成器（可能已被同名建立取代）。
func (r *Registry) Seeded() engine.Generator {
	g, _ := r.Get(SeededName)
	return g
}

// Normal 回傳預設的 "random" 生成器（可能已被同名建立取代）。
func (r *Registry) Normal() engine.Generator {
	g, _ := r.Get(RandomName)
	return g
}

// ============================================================
// ** Sampling **
// ============================================================

// Next 從指定生成器取下一個值。
func (r *Registry) Next(name string) (float64, error) {
	g, ok := r.Get(name)
	if !ok {
		return 0, errs.InvalidArgumentf("generator %q not found", name)
	}
	return g.Next(), nil
}

// Sample 從指定生成器連續取 n 個值；uniform 為 true 時改取 [0,1) 視圖。
func (r *Registry) Sample(name string, n int, uniform bool) ([]float64, error) {
	g, ok := r.Get(name)
	if !ok {
		return nil, errs.InvalidArgumentf("generator %q not found", name)
	}
	if n < 0 {
		return nil, errs.InvalidArgumentf("sample count %d < 0", n)
	}
	next := g.Next
	if uniform {
		u, ok := g.(engine.Uniform)
		if !ok {
			return nil, errs.InvalidArgumentf("generator %q (%s) has no uniform view", name, g.Kind())
		}
		next = u.Float64
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = next()
	}
	return out, nil
}

// UniformRange 回傳 [min, max] 的均勻整數（含兩端）。
func (r *Registry) UniformRange(min, max int64) (int64, error) {
	return r.core.UniformRange(min, max)
}

// Integer 回傳 [0, 2^53-1) 的均勻整數。
func (r *Registry) Integer() int64 {
	return r.core.SafeInteger()
}

// BigRandom 回傳 [min, max] 的均勻大整數（含兩端）。
func (r *Registry) BigRandom(min, max *big.Int) (*big.Int, error) {
	return r.core.BigRange(min, max)
}

// Seed 回傳基底 seed，可用 WithSeed 重建同一份 Registry。
func (r *Registry) Seed() int64 {
	return r.seed
}
