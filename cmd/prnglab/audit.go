package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zintix-labs/prnglab/audit"
	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/configs"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/perf"
)

type auditOpts struct {
	suite    string
	output   string
	progress bool
	pprof    string
	pprofDir string
}

func newAuditCmd(g *globalOpts) *cobra.Command {
	o := new(auditOpts)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run a statistical audit suite",
		Long: `Run every check of an audit suite and print the report.
Without -c the embedded default suite is used. The command fails when any check is not OK. For example:
  prnglab audit -c suite.yaml -o json --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd, g, o)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.suite, "config", "c", "", "suite yaml path (default: embedded "+configs.DefaultSuite+")")
	flags.StringVarP(&o.output, "output", "o", audit.FormatText, "output format: text|json|yaml")
	flags.BoolVar(&o.progress, "progress", false, "show progress bar")
	flags.StringVarP(&o.pprof, "pprof", "p", "", "pprof: '', cpu, heap, allocs")
	flags.StringVar(&o.pprofDir, "pprof-dir", perf.DefaultDir, "pprof output dir")
	return cmd
}

func runAudit(cmd *cobra.Command, g *globalOpts, o *auditOpts) error {
	rd, err := audit.RenderFor(o.output)
	if err != nil {
		return err
	}
	raw, err := loadSuite(o.suite)
	if err != nil {
		return err
	}
	suite, err := config.GetSuiteSettingByYAML(raw)
	if err != nil {
		return err
	}
	// --seed 覆寫套組內的 seed
	if cmd.Flags().Changed("seed") {
		seed := g.seed
		suite.Seed = &seed
	}
	log, err := g.logger()
	if err != nil {
		return err
	}
	runner, err := audit.NewRunner(suite, audit.WithLogger(log), audit.WithProgress(o.progress))
	if err != nil {
		return err
	}

	var rep *audit.Report
	err = perf.RunPProf(o.pprofDir, o.pprof, func() error {
		var runErr error
		rep, runErr = runner.Run(cmd.Context())
		return runErr
	})
	if err != nil {
		return err
	}
	if err := rep.WriteWith(cmd.OutOrStdout(), rd); err != nil {
		return err
	}
	if !rep.OK {
		return errs.Warnf("audit %q: %d of %d checks failed", rep.Suite, rep.Failed, len(rep.Checks))
	}
	return nil
}

func loadSuite(path string) ([]byte, error) {
	if path == "" {
		return configs.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, fmt.Sprintf("read suite %q", path))
	}
	return raw, nil
}
