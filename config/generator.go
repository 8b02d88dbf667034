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

// Package config 定義生成器與稽核套組的設定檔格式（YAML / JSON）。
//
// 解碼一律為嚴格模式：多寫或拼錯欄位會直接回傳錯誤，而不是被靜默忽略。
package config

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/engine"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

// GeneratorSetting 描述一個具名生成器。依 Kind 只需填寫對應的子設定。
// Seed 為 nil 時由 Registry 從基底 seed 派生。
type GeneratorSetting struct {
	Name    string          `yaml:"name"              json:"name"`
	Kind    string          `yaml:"kind"              json:"kind"`
	Seed    *uint64         `yaml:"seed,omitempty"    json:"seed,omitempty"`
	LCG     *LCGSetting     `yaml:"lcg,omitempty"     json:"lcg,omitempty"`
	MWC     *MWCSetting     `yaml:"mwc,omitempty"     json:"mwc,omitempty"`
	Normal  *NormalSetting  `yaml:"normal,omitempty"  json:"normal,omitempty"`
	TwoLane *TwoLaneSetting `yaml:"twolane,omitempty" json:"twolane,omitempty"`

	kind engine.Kind
}

// LCGSetting 可直接給定 (a, c, m)，或只給 width 由合成器推導。
type LCGSetting struct {
	Multiplier uint64 `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	Increment  uint64 `yaml:"increment,omitempty"  json:"increment,omitempty"`
	Modulus    uint64 `yaml:"modulus,omitempty"    json:"modulus,omitempty"`
	Width      int    `yaml:"width,omitempty"      json:"width,omitempty"`
	Mode       string `yaml:"mode,omitempty"       json:"mode,omitempty"`
	ParamSeed  uint64 `yaml:"param_seed,omitempty" json:"param_seed,omitempty"`
}

// MWCSetting 的 Multiplier 為 0 時使用 synth.GenerateMWCParams(ParamSeed)。
type MWCSetting struct {
	Multiplier uint32 `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	Carry      uint32 `yaml:"carry,omitempty"      json:"carry,omitempty"`
	ParamSeed  uint64 `yaml:"param_seed,omitempty" json:"param_seed,omitempty"`
}

// NormalSetting 供 gaussian / polar 使用；Fold 只對 polar 有意義。
type NormalSetting struct {
	Mean   float64 `yaml:"mean"           json:"mean"`
	StdDev float64 `yaml:"std_dev"        json:"std_dev"`
	Fold   bool    `yaml:"fold,omitempty" json:"fold,omitempty"`
}

// TwoLaneSetting 的兩個通道 seed 皆為 0 時由 Registry 派生。
type TwoLaneSetting struct {
	Lane1 uint32 `yaml:"lane1" json:"lane1"`
	Lane2 uint32 `yaml:"lane2" json:"lane2"`
}

// ParsedKind 回傳 init 後的引擎種類。
func (gs *GeneratorSetting) ParsedKind() engine.Kind {
	return gs.kind
}

// Synthesized 回傳 LCG 是否需由合成器推導常數。
func (s *LCGSetting) Synthesized() bool {
	return s.Multiplier == 0 && s.Modulus == 0
}

// LCGParams 依設定取得 LCG 常數：直接給定或由合成器推導。
func (s *LCGSetting) LCGParams() (synth.LCGParams, error) {
	if !s.Synthesized() {
		return synth.LCGParams{Multiplier: s.Multiplier, Increment: s.Increment, Modulus: s.Modulus}, nil
	}
	mode, err := synth.ParseMode(s.Mode)
	if err != nil {
		return synth.LCGParams{}, err
	}
	return synth.Generate(mode, s.ParamSeed, s.Width)
}

// MWCParams 依設定取得 MWC 常數。
func (s *MWCSetting) MWCParams() (synth.MWCParams, error) {
	if s.Multiplier != 0 {
		return synth.MWCParams{Multiplier: s.Multiplier, Carry: s.Carry}, nil
	}
	p, err := synth.GenerateMWCParams(s.ParamSeed)
	if err != nil {
		return synth.MWCParams{}, err
	}
	if s.Carry != 0 {
		p.Carry = s.Carry
	}
	return p, nil
}

// init 解析 kind 並執行基本檢查
func (gs *GeneratorSetting) init() error {
	gs.Name = strings.TrimSpace(gs.Name)
	if gs.Name == "" {
		return errs.InvalidArgumentf("generator: name required")
	}
	k, err := engine.ParseKind(gs.Kind)
	if err != nil {
		return errs.Wrap(err, fmt.Sprintf("generator %q", gs.Name))
	}
	gs.kind = k
	return gs.valid()
}

func (gs *GeneratorSetting) valid() error {
	switch gs.kind {
	case engine.KindLCG:
		if gs.LCG == nil {
			return errs.InvalidArgumentf("generator %q: lcg section required", gs.Name)
		}
		if gs.LCG.Synthesized() {
			if gs.LCG.Width == 0 {
				return errs.InvalidArgumentf("generator %q: lcg needs either (multiplier, modulus) or width", gs.Name)
			}
		} else if gs.LCG.Modulus <= 1 {
			return errs.DegenerateModulusf("generator %q: lcg modulus %d <= 1", gs.Name, gs.LCG.Modulus)
		}
	case engine.KindMWC:
		if gs.MWC == nil {
			gs.MWC = &MWCSetting{}
		}
	case engine.KindGaussian, engine.KindPolar:
		if gs.Normal == nil {
			return errs.InvalidArgumentf("generator %q: normal section required", gs.Name)
		}
		if gs.Normal.StdDev < 0 {
			return errs.InvalidArgumentf("generator %q: std_dev %v < 0", gs.Name, gs.Normal.StdDev)
		}
	case engine.KindTwoLane:
		if gs.TwoLane == nil {
			gs.TwoLane = &TwoLaneSetting{}
		}
		if (gs.TwoLane.Lane1 == 0) != (gs.TwoLane.Lane2 == 0) {
			return errs.InvalidArgumentf("generator %q: set both twolane lanes or neither", gs.Name)
		}
	case engine.KindEndBiased, engine.KindMT19937:
	}
	return nil
}

// GetGeneratorSettingByYAML 會嚴格解碼 YAML、初始化並執行基本檢查後回傳。
func GetGeneratorSettingByYAML(data []byte) (*GeneratorSetting, error) {
	gs := &GeneratorSetting{}
	if err := decodeYAML(data, gs); err != nil {
		return nil, err
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "generator setting initialized err")
	}
	return gs, nil
}

// GetGeneratorSettingByJSON 會嚴格解碼 JSON、初始化並執行基本檢查後回傳。
func GetGeneratorSettingByJSON(data []byte) (*GeneratorSetting, error) {
	gs := &GeneratorSetting{}
	if err := decodeJSON(data, gs); err != nil {
		return nil, err
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "generator setting initialized err")
	}
	return gs, nil
}

// Init 供程式內組裝（非解碼）的設定使用。
func (gs *GeneratorSetting) Init() error {
	return gs.init()
}
