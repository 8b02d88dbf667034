package audit

import (
	"io"
	"time"

	"github.com/zintix-labs/prnglab/stats"
)

// Report 為一次稽核的完整結果。
type Report struct {
	RunID   string        `json:"run_id"  yaml:"run_id"`
	Suite   string        `json:"suite"   yaml:"suite"`
	Seed    int64         `json:"seed"    yaml:"seed"`
	Samples int           `json:"samples" yaml:"samples"`
	Trials  int           `json:"trials"  yaml:"trials"`
	Alpha   float64       `json:"alpha"   yaml:"alpha"`
	Checks  []CheckReport `json:"checks"  yaml:"checks"`
	Passed  int           `json:"passed"  yaml:"passed"`
	Failed  int           `json:"failed"  yaml:"failed"`
	OK      bool          `json:"ok"      yaml:"ok"`
	Elapsed string        `json:"elapsed" yaml:"elapsed"`

	elapsed time.Duration
}

// CheckReport 為單項檢定在所有 trial 的結果。
type CheckReport struct {
	Label     string         `json:"label"             yaml:"label"`
	Generator string         `json:"generator"         yaml:"generator"`
	Kind      string         `json:"kind"              yaml:"kind"`
	Test      string         `json:"test"              yaml:"test"`
	View      string         `json:"view"              yaml:"view"`
	Expect    string         `json:"expect"            yaml:"expect"`
	Trials    int            `json:"trials"            yaml:"trials"`
	Passes    int            `json:"passes"            yaml:"passes"`
	OK        bool           `json:"ok"                yaml:"ok"`
	Results   []stats.Result `json:"results"           yaml:"results"`
	Summary   *stats.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// judge 以多數決判定：預期通過時需過半 trial 通過，預期失敗時需過半 trial 失敗。
func (c *CheckReport) judge(wantPass bool) {
	if wantPass {
		c.OK = 2*c.Passes > c.Trials
		return
	}
	c.OK = 2*(c.Trials-c.Passes) > c.Trials
}

func (r *Report) done(d time.Duration) {
	r.Passed, r.Failed = 0, 0
	for _, c := range r.Checks {
		if c.OK {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	r.OK = r.Failed == 0 && len(r.Checks) > 0
	r.elapsed = d
	r.Elapsed = d.Round(time.Microsecond).String()
}

// Duration 回傳執行時間。
func (r *Report) Duration() time.Duration {
	return r.elapsed
}

// WriteWith 以指定的 Render 輸出報告。
func (r *Report) WriteWith(w io.Writer, rd Render) error {
	return rd.Write(w, r)
}

// Failures 回傳未符合預期的檢定。
func (r *Report) Failures() []CheckReport {
	var out []CheckReport
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}
