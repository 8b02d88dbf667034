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

// Package audit 依稽核套組（config.SuiteSetting）建立生成器、執行統計檢定並產出報告。
//
// 每項檢定重複 Trials 次，以多數決判定結果；Expect 為 fail 的檢定要求多數 trial 不通過，
// 用來確認檢定本身有鑑別力（例如常數序列的熵檢定必須失敗）。
package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/stats"
)

// Runner 執行一份稽核套組。
type Runner struct {
	suite   *config.SuiteSetting
	log     *slog.Logger
	factory core.PRNGFactory
	showpb  bool
}

// Option 設定 Runner。
type Option func(*Runner)

// WithLogger 注入 logger；未指定時不輸出任何日誌。
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithFactory 指定 Registry 使用的 PRNG 工廠。
func WithFactory(f core.PRNGFactory) Option {
	return func(r *Runner) { r.factory = f }
}

// WithProgress 於 stderr 顯示進度條。
func WithProgress(show bool) Option {
	return func(r *Runner) { r.showpb = show }
}

// NewRunner 建立 Runner；suite 需已通過 config 的解碼與檢查。
func NewRunner(suite *config.SuiteSetting, opts ...Option) (*Runner, error) {
	if suite == nil {
		return nil, errs.InvalidArgumentf("audit: suite required")
	}
	r := &Runner{suite: suite}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

// NewRunnerByYAML 解碼 YAML 套組後建立 Runner。
func NewRunnerByYAML(raw []byte, opts ...Option) (*Runner, error) {
	s, err := config.GetSuiteSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	return NewRunner(s, opts...)
}

// Run 建立 Registry 並依序執行所有檢定。每項檢定開始前檢查 ctx。
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	s := r.suite
	opts := []prnglab.Option{prnglab.WithLogger(r.log)}
	if s.Seed != nil {
		opts = append(opts, prnglab.WithSeed(*s.Seed))
	}
	if r.factory != nil {
		opts = append(opts, prnglab.WithFactory(r.factory))
	}
	reg, err := prnglab.New(opts...)
	if err != nil {
		return nil, err
	}
	for _, g := range s.Generators {
		if _, err := reg.CreateFromSetting(g); err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("audit %q: create generator", s.Name))
		}
	}

	rep := &Report{
		RunID:   uuid.NewString(),
		Suite:   s.Name,
		Seed:    reg.Seed(),
		Samples: s.Samples,
		Trials:  s.Trials,
		Alpha:   s.Alpha,
		Checks:  make([]CheckReport, 0, len(s.Checks)),
	}
	r.log.Info("audit started", "run_id", rep.RunID, "suite", s.Name, "seed", rep.Seed, "checks", len(s.Checks))

	bar := pb.New(len(s.Checks) * s.Trials)
	if !r.showpb {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	start := time.Now()
	for _, c := range s.Checks {
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return nil, errs.Wrap(err, fmt.Sprintf("audit %q canceled before %s", s.Name, c.Label()))
		}
		cr, err := r.runCheck(reg, c, bar)
		if err != nil {
			bar.Finish()
			return nil, errs.Wrap(err, fmt.Sprintf("audit %q: check %s", s.Name, c.Label()))
		}
		r.log.Debug("check done", "check", cr.Label, "passes", cr.Passes, "trials", cr.Trials, "ok", cr.OK)
		rep.Checks = append(rep.Checks, cr)
	}
	bar.Finish()
	rep.done(time.Since(start))
	r.log.Info("audit finished", "run_id", rep.RunID, "ok", rep.OK, "failed", rep.Failed)
	return rep, nil
}

func (r *Runner) runCheck(reg *prnglab.Registry, c *config.CheckSetting, bar *pb.ProgressBar) (CheckReport, error) {
	ent, ok := reg.Entry(c.Generator)
	if !ok {
		return CheckReport{}, errs.InvalidArgumentf("generator %q not found", c.Generator)
	}
	cr := CheckReport{
		Label:     c.Label(),
		Generator: c.Generator,
		Kind:      ent.Kind,
		Test:      c.Test,
		View:      c.View,
		Expect:    c.Expect,
		Trials:    r.suite.Trials,
		Results:   make([]stats.Result, 0, r.suite.Trials),
	}
	var last []float64
	for range r.suite.Trials {
		xs, err := reg.Sample(c.Generator, r.suite.Samples, c.View == config.ViewUniform)
		if err != nil {
			return CheckReport{}, err
		}
		res, err := r.evaluate(c, xs)
		if err != nil {
			return CheckReport{}, err
		}
		if res.Passed {
			cr.Passes++
		}
		cr.Results = append(cr.Results, res)
		last = xs
		bar.Increment()
	}
	if sum, err := stats.Describe(last); err == nil {
		cr.Summary = &sum
	}
	cr.judge(c.WantPass())
	return cr, nil
}

func (r *Runner) evaluate(c *config.CheckSetting, xs []float64) (stats.Result, error) {
	switch c.Test {
	case config.TestKS:
		cdf := stats.UniformCDF
		if c.CDF == config.CDFNormal {
			cdf = stats.NormalCDF(c.Mean, c.StdDev)
		}
		return stats.KolmogorovSmirnov(xs, cdf)
	case config.TestChi2:
		seq, err := stats.ToBig(xs, c.View == config.ViewUniform)
		if err != nil {
			return stats.Result{}, err
		}
		bins := c.Bins
		if bins == 0 {
			bins = stats.DefaultBins(len(seq))
		}
		return stats.ChiSquaredTest(seq, bins, r.suite.Alpha)
	case config.TestEntropy:
		h, err := stats.NormalizedEntropy(xs)
		if err != nil {
			return stats.Result{}, err
		}
		return stats.Result{Statistic: h, Threshold: c.MinEntropy, Passed: h >= c.MinEntropy}, nil
	}
	return stats.Result{}, errs.InvalidArgumentf("unknown test %q", c.Test)
}
