package config

import (
	"errors"
	"testing"

	"github.com/zintix-labs/prnglab/configs"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/engine"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

func TestGeneratorSettingYAML(t *testing.T) {
	src := []byte(`
name: " numrec "
kind: LCG
seed: 123
lcg: { multiplier: 1664525, increment: 1013904223, modulus: 4294967296 }
`)
	gs, err := GetGeneratorSettingByYAML(src)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if gs.Name != "numrec" || gs.ParsedKind() != engine.KindLCG {
		t.Fatalf("unexpected setting %+v kind=%s", gs, gs.ParsedKind())
	}
	if gs.Seed == nil || *gs.Seed != 123 {
		t.Fatalf("seed not decoded")
	}
	p, err := gs.LCG.LCGParams()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p != (synth.LCGParams{Multiplier: 1664525, Increment: 1013904223, Modulus: 1 << 32}) {
		t.Fatalf("unexpected params %s", p)
	}
}

func TestGeneratorSettingSynthesized(t *testing.T) {
	gs, err := GetGeneratorSettingByJSON([]byte(`{"name":"fp","kind":"lcg","lcg":{"width":16,"mode":"full","param_seed":1000}}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p, err := gs.LCG.LCGParams()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	want, _ := synth.GenerateFullPeriodLCGParams(1000, 16)
	if p != want {
		t.Fatalf("got %s want %s", p, want)
	}
	if ok, err := synth.FullPeriod(p); err != nil || !ok {
		t.Fatalf("full mode params should satisfy Hull–Dobell: %s (%v)", p, err)
	}

	gs.LCG.Mode = "bogus"
	if _, err := gs.LCG.LCGParams(); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("unknown mode should be InvalidArgument, got %v", err)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	if _, err := GetGeneratorSettingByYAML([]byte("name: a\nkind: mt19937\nsede: 1\n")); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("yaml typo should be rejected, got %v", err)
	}
	if _, err := GetGeneratorSettingByJSON([]byte(`{"name":"a","kind":"mt19937","sede":1}`)); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("json typo should be rejected, got %v", err)
	}
	if _, err := GetGeneratorSettingByJSON([]byte(`{"name":"a","kind":"mt19937"} {}`)); err == nil {
		t.Fatalf("trailing json should be rejected")
	}
	if _, err := GetGeneratorSettingByYAML(nil); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("empty document should be rejected, got %v", err)
	}
}

func TestGeneratorSettingValidation(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code errs.Code
	}{
		{"no name", `{"kind":"mt19937"}`, errs.CodeInvalidArgument},
		{"bad kind", `{"name":"x","kind":"xorshift"}`, errs.CodeInvalidArgument},
		{"lcg without section", `{"name":"x","kind":"lcg"}`, errs.CodeInvalidArgument},
		{"lcg without width", `{"name":"x","kind":"lcg","lcg":{"mode":"full"}}`, errs.CodeInvalidArgument},
		{"lcg degenerate", `{"name":"x","kind":"lcg","lcg":{"multiplier":3,"modulus":1}}`, errs.CodeDegenerateModulus},
		{"gaussian without section", `{"name":"x","kind":"gaussian"}`, errs.CodeInvalidArgument},
		{"negative std", `{"name":"x","kind":"polar","normal":{"mean":0,"std_dev":-1}}`, errs.CodeInvalidArgument},
		{"half lanes", `{"name":"x","kind":"twolane","twolane":{"lane1":7,"lane2":0}}`, errs.CodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := GetGeneratorSettingByJSON([]byte(tc.src))
		if errs.CodeOf(err) != tc.code {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}

	// 省略子設定的 kind 會補上空設定
	gs, err := GetGeneratorSettingByJSON([]byte(`{"name":"m","kind":"mwc"}`))
	if err != nil || gs.MWC == nil {
		t.Fatalf("mwc should default its section: %v", err)
	}
	p, err := gs.MWC.MWCParams()
	if err != nil || !synth.ValidMWCMultiplier(p.Multiplier) {
		t.Fatalf("default mwc params invalid: %v %s", err, p)
	}
}

func TestSuiteDefaults(t *testing.T) {
	s, err := GetSuiteSettingByYAML([]byte(`
generators:
  - { name: mt, kind: mt19937 }
checks:
  - { generator: mt, test: KS }
  - { generator: seeded, test: entropy }
`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Name != "suite" || s.Samples != DefaultSamples || s.Trials != DefaultTrials || s.Alpha != DefaultAlpha {
		t.Fatalf("defaults not applied: %+v", s)
	}
	ks := s.Checks[0]
	if ks.Test != TestKS || ks.CDF != CDFUniform || ks.View != ViewRaw || !ks.WantPass() {
		t.Fatalf("ks defaults not applied: %+v", ks)
	}
	if s.Checks[1].MinEntropy != DefaultMinEntropy {
		t.Fatalf("entropy default not applied: %+v", s.Checks[1])
	}
	if ks.Label() != "mt/ks" {
		t.Fatalf("label got %q", ks.Label())
	}
}

func TestSuiteValidation(t *testing.T) {
	cases := map[string]string{
		"no checks":      "generators: [{name: a, kind: mt19937}]\nchecks: []\n",
		"unknown gen":    "checks: [{generator: nope, test: ks}]\n",
		"duplicate gen":  "generators: [{name: a, kind: mt19937}, {name: a, kind: mwc}]\nchecks: [{generator: a, test: ks}]\n",
		"unknown test":   "checks: [{generator: seeded, test: runs}]\n",
		"unknown view":   "checks: [{generator: seeded, test: ks, view: sideways}]\n",
		"normal no sd":   "checks: [{generator: random, test: ks, cdf: normal, mean: 50}]\n",
		"one bin":        "checks: [{generator: seeded, test: chi2, bins: 1}]\n",
		"too many bins":  "samples: 10\nchecks: [{generator: seeded, test: chi2, bins: 11}]\n",
		"bad alpha":      "alpha: 1.5\nchecks: [{generator: seeded, test: chi2}]\n",
		"bad expect":     "checks: [{generator: seeded, test: ks, expect: maybe}]\n",
		"min entropy":    "checks: [{generator: seeded, test: entropy, min_entropy: 2}]\n",
		"unknown field":  "checks: [{generator: seeded, test: ks, bin: 3}]\n",
		"one sample":     "samples: 1\nchecks: [{generator: seeded, test: ks}]\n",
		"negative trial": "trials: -1\nchecks: [{generator: seeded, test: ks}]\n",
	}
	for name, src := range cases {
		if _, err := GetSuiteSettingByYAML([]byte(src)); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Fatalf("%s: expected InvalidArgument, got %v", name, err)
		}
	}
}

func TestEmbeddedDefaultSuite(t *testing.T) {
	raw, err := configs.Default()
	if err != nil {
		t.Fatalf("read embedded suite: %v", err)
	}
	s, err := GetSuiteSettingByYAML(raw)
	if err != nil {
		t.Fatalf("embedded suite invalid: %v", err)
	}
	if s.Name != "default" || s.Seed == nil || len(s.Generators) == 0 || len(s.Checks) == 0 {
		t.Fatalf("unexpected embedded suite %+v", s)
	}
	fails := 0
	for _, c := range s.Checks {
		if !c.WantPass() {
			fails++
		}
	}
	if fails == 0 || fails == len(s.Checks) {
		t.Fatalf("embedded suite should mix passing and failing expectations")
	}
}
