package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/zintix-labs/prnglab/configs"
	"github.com/zintix-labs/prnglab/errs"
	"gopkg.in/yaml.v3"
)

func runDefault(t *testing.T) *Report {
	t.Helper()
	raw, err := configs.Default()
	if err != nil {
		t.Fatalf("read default suite: %v", err)
	}
	r, err := NewRunnerByYAML(raw)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return rep
}

func TestDefaultSuitePasses(t *testing.T) {
	rep := runDefault(t)
	if !rep.OK {
		for _, c := range rep.Failures() {
			t.Logf("%s: %d/%d passes (expect %s) results=%+v", c.Label, c.Passes, c.Trials, c.Expect, c.Results)
		}
		t.Fatalf("default suite should pass, %d failed", rep.Failed)
	}
	if rep.Passed != len(rep.Checks) || rep.RunID == "" || rep.Seed != 20250101 {
		t.Fatalf("unexpected report header %+v", rep)
	}
	for _, c := range rep.Checks {
		if len(c.Results) != c.Trials || c.Summary == nil {
			t.Fatalf("%s: incomplete check report", c.Label)
		}
	}
}

func TestDeterministicBySuiteSeed(t *testing.T) {
	a := runDefault(t)
	b := runDefault(t)
	if a.RunID == b.RunID {
		t.Fatalf("run id should be unique per run")
	}
	for i := range a.Checks {
		ra, rb := a.Checks[i].Results, b.Checks[i].Results
		for j := range ra {
			if ra[j] != rb[j] {
				t.Fatalf("%s trial %d differs: %+v vs %+v", a.Checks[i].Label, j, ra[j], rb[j])
			}
		}
	}
}

func TestExpectFailIsJudged(t *testing.T) {
	src := []byte(`
seed: 1
samples: 200
trials: 3
generators:
  - { name: k, kind: lcg, seed: 1, lcg: { multiplier: 1, increment: 0, modulus: 64 } }
checks:
  - { generator: k, test: entropy }
  - { generator: k, test: entropy, expect: fail }
  - { generator: k, test: ks, view: uniform, expect: fail }
`)
	r, err := NewRunnerByYAML(src)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.OK || rep.Failed != 1 || rep.Passed != 2 {
		t.Fatalf("expected exactly the first check to miss, got passed=%d failed=%d", rep.Passed, rep.Failed)
	}
	if f := rep.Failures(); len(f) != 1 || f[0].Expect != "pass" || f[0].Passes != 0 {
		t.Fatalf("unexpected failures %+v", f)
	}
}

func TestChi2NeedsIntegers(t *testing.T) {
	src := []byte(`
seed: 1
checks:
  - { generator: random, test: chi2 }
`)
	r, err := NewRunnerByYAML(src)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := r.Run(context.Background()); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("gaussian raw chi2 should be rejected, got %v", err)
	}

	// uniform 視圖會先放大成整數
	src = []byte(`
seed: 1
generators: [{ name: mt, kind: mt19937, seed: 5489 }]
checks: [{ generator: mt, test: chi2, view: uniform, bins: 20 }]
`)
	r, _ = NewRunnerByYAML(src)
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if c := rep.Checks[0]; c.Results[0].Threshold <= 0 {
		t.Fatalf("missing chi2 threshold: %+v", c)
	}
}

func TestRunCanceled(t *testing.T) {
	raw, _ := configs.Default()
	r, err := NewRunnerByYAML(raw)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := NewRunner(nil); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("nil suite should be rejected")
	}
}

func TestRenders(t *testing.T) {
	rep := runDefault(t)

	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &JSONRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if back.RunID != rep.RunID || len(back.Checks) != len(rep.Checks) {
		t.Fatalf("json lost fields")
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, &YAMLRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var yback Report
	if err := yaml.Unmarshal(buf.Bytes(), &yback); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	if yback.Suite != "default" || !yback.OK {
		t.Fatalf("yaml lost fields: %+v", yback)
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, &TextRender{}); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"default", "mt/chi2", "gauss/ks", "constant/entropy", "Result", "OK"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text table missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Samples x Trials") || !strings.Contains(out, "1,000 x 3") {
		t.Fatalf("text table should group numbers:\n%s", out)
	}
}

func TestRenderFor(t *testing.T) {
	for in, want := range map[string]Render{"": &TextRender{}, "JSON": &JSONRender{}, "yml": &YAMLRender{}} {
		got, err := RenderFor(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if typeName(got) != typeName(want) {
			t.Fatalf("%q: got %T want %T", in, got, want)
		}
	}
	if _, err := RenderFor("xml"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("unknown format should be rejected")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextRender:
		return "text"
	case *JSONRender:
		return "json"
	case *YAMLRender:
		return "yaml"
	}
	return ""
}

func TestFlowStyleLeafSequences(t *testing.T) {
	type row struct {
		Name string `yaml:"name"`
	}
	v := &struct {
		Ints [][]int `yaml:"ints"`
		Rows []row   `yaml:"rows"`
	}{
		Ints: [][]int{{1, 2}, {3}},
		Rows: []row{{Name: "a"}},
	}
	var buf bytes.Buffer
	if err := forceReadableList(&buf, v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "- [1, 2]") || !strings.Contains(out, "- [3]") {
		t.Fatalf("leaf sequences should be flow style:\n%s", out)
	}
	if !strings.Contains(out, "- name: a") {
		t.Fatalf("mapping sequences should stay block style:\n%s", out)
	}
}
