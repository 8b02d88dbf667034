package config

import (
	"slices"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
)

// 檢定種類
const (
	TestKS      = "ks"
	TestChi2    = "chi2"
	TestEntropy = "entropy"
)

// 取樣視角：raw 為 Next()，uniform 為 Float64()（生成器需實作 engine.Uniform）。
const (
	ViewRaw     = "raw"
	ViewUniform = "uniform"
)

// 理論分布
const (
	CDFUniform = "uniform"
	CDFNormal  = "normal"
)

// 預期結果
const (
	ExpectPass = "pass"
	ExpectFail = "fail"
)

// DefaultGenerators 為 Registry 建立時就存在的生成器名稱。
var DefaultGenerators = []string{"seeded", "random"}

// 預設值
const (
	DefaultSamples    = 1000
	DefaultTrials     = 3
	DefaultAlpha      = 0.01
	DefaultMinEntropy = 0.9
)

// SuiteSetting 為一份稽核套組：先建立 Generators，再依序執行 Checks。
type SuiteSetting struct {
	Name       string              `yaml:"name"                 json:"name"`
	Seed       *int64              `yaml:"seed,omitempty"       json:"seed,omitempty"`
	Samples    int                 `yaml:"samples,omitempty"    json:"samples,omitempty"`
	Trials     int                 `yaml:"trials,omitempty"     json:"trials,omitempty"`
	Alpha      float64             `yaml:"alpha,omitempty"      json:"alpha,omitempty"`
	Generators []*GeneratorSetting `yaml:"generators"           json:"generators"`
	Checks     []*CheckSetting     `yaml:"checks"               json:"checks"`
}

// CheckSetting 描述對單一生成器執行的一項檢定。
//
// 每項檢定跑 Trials 次，過半數通過即視為通過；Expect 為 fail 時要求過半數失敗。
type CheckSetting struct {
	Generator  string  `yaml:"generator"             json:"generator"`
	Test       string  `yaml:"test"                  json:"test"`
	View       string  `yaml:"view,omitempty"        json:"view,omitempty"`
	CDF        string  `yaml:"cdf,omitempty"         json:"cdf,omitempty"`
	Mean       float64 `yaml:"mean,omitempty"        json:"mean,omitempty"`
	StdDev     float64 `yaml:"std_dev,omitempty"     json:"std_dev,omitempty"`
	Bins       int     `yaml:"bins,omitempty"        json:"bins,omitempty"`
	MinEntropy float64 `yaml:"min_entropy,omitempty" json:"min_entropy,omitempty"`
	Expect     string  `yaml:"expect,omitempty"      json:"expect,omitempty"`
}

// Label 回傳檢定的顯示名稱，例如 "mt/ks"。
func (c *CheckSetting) Label() string {
	return c.Generator + "/" + c.Test
}

// WantPass 回傳此檢定是否預期通過。
func (c *CheckSetting) WantPass() bool {
	return c.Expect != ExpectFail
}

// init 套用預設值並執行基本檢查
func (s *SuiteSetting) init() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = "suite"
	}
	if s.Samples == 0 {
		s.Samples = DefaultSamples
	}
	if s.Trials == 0 {
		s.Trials = DefaultTrials
	}
	if s.Alpha == 0 {
		s.Alpha = DefaultAlpha
	}
	names := make([]string, 0, len(s.Generators))
	for i, g := range s.Generators {
		if g == nil {
			return errs.InvalidArgumentf("suite %q: generator #%d is empty", s.Name, i)
		}
		if err := g.init(); err != nil {
			return err
		}
		if slices.Contains(names, g.Name) {
			return errs.InvalidArgumentf("suite %q: duplicate generator %q", s.Name, g.Name)
		}
		names = append(names, g.Name)
	}
	for i, c := range s.Checks {
		if c == nil {
			return errs.InvalidArgumentf("suite %q: check #%d is empty", s.Name, i)
		}
		if err := c.init(); err != nil {
			return err
		}
	}
	return s.valid(names)
}

func (s *SuiteSetting) valid(names []string) error {
	if s.Samples < 2 {
		return errs.InvalidArgumentf("suite %q: samples %d < 2", s.Name, s.Samples)
	}
	if s.Trials < 1 {
		return errs.InvalidArgumentf("suite %q: trials %d < 1", s.Name, s.Trials)
	}
	if !(s.Alpha > 0 && s.Alpha < 1) {
		return errs.InvalidArgumentf("suite %q: alpha %v not in (0,1)", s.Name, s.Alpha)
	}
	if len(s.Checks) == 0 {
		return errs.InvalidArgumentf("suite %q: no checks", s.Name)
	}
	for _, c := range s.Checks {
		if c.Bins > s.Samples {
			return errs.InvalidArgumentf("suite %q: check %s bins %d > samples %d", s.Name, c.Label(), c.Bins, s.Samples)
		}
		// 內建預設生成器也可被引用
		if slices.Contains(DefaultGenerators, c.Generator) {
			continue
		}
		if !slices.Contains(names, c.Generator) {
			return errs.InvalidArgumentf("suite %q: check %s references unknown generator", s.Name, c.Label())
		}
	}
	return nil
}

func (c *CheckSetting) init() error {
	c.Generator = strings.TrimSpace(c.Generator)
	c.Test = strings.ToLower(strings.TrimSpace(c.Test))
	if c.Generator == "" {
		return errs.InvalidArgumentf("check: generator required")
	}
	if c.View == "" {
		c.View = ViewRaw
	}
	if c.Expect == "" {
		c.Expect = ExpectPass
	}
	switch c.Test {
	case TestKS:
		if c.CDF == "" {
			c.CDF = CDFUniform
		}
	case TestChi2:
	case TestEntropy:
		if c.MinEntropy == 0 {
			c.MinEntropy = DefaultMinEntropy
		}
	default:
		return errs.InvalidArgumentf("check %s: unknown test %q", c.Label(), c.Test)
	}
	return c.valid()
}

func (c *CheckSetting) valid() error {
	if c.View != ViewRaw && c.View != ViewUniform {
		return errs.InvalidArgumentf("check %s: unknown view %q", c.Label(), c.View)
	}
	if c.Expect != ExpectPass && c.Expect != ExpectFail {
		return errs.InvalidArgumentf("check %s: unknown expect %q", c.Label(), c.Expect)
	}
	if c.CDF != "" && c.CDF != CDFUniform && c.CDF != CDFNormal {
		return errs.InvalidArgumentf("check %s: unknown cdf %q", c.Label(), c.CDF)
	}
	if c.CDF == CDFNormal && !(c.StdDev > 0) {
		return errs.InvalidArgumentf("check %s: normal cdf needs std_dev > 0", c.Label())
	}
	if c.Bins < 0 || c.Bins == 1 {
		return errs.InvalidArgumentf("check %s: bins %d must be 0 (auto) or >= 2", c.Label(), c.Bins)
	}
	if c.MinEntropy < 0 || c.MinEntropy > 1 {
		return errs.InvalidArgumentf("check %s: min_entropy %v not in [0,1]", c.Label(), c.MinEntropy)
	}
	return nil
}

// GetSuiteSettingByYAML 會嚴格解碼 YAML、套用預設值並執行基本檢查後回傳。
func GetSuiteSettingByYAML(data []byte) (*SuiteSetting, error) {
	s := &SuiteSetting{}
	if err := decodeYAML(data, s); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, errs.Wrap(err, "suite setting initialized err")
	}
	return s, nil
}

// GetSuiteSettingByJSON 會嚴格解碼 JSON、套用預設值並執行基本檢查後回傳。
func GetSuiteSettingByJSON(data []byte) (*SuiteSetting, error) {
	s := &SuiteSetting{}
	if err := decodeJSON(data, s); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, errs.Wrap(err, "suite setting initialized err")
	}
	return s, nil
}
