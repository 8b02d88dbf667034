package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server"
	"github.com/zintix-labs/prnglab/server/logger"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

type serveOpts struct {
	addr       string
	maxSamples int
	logBuf     int
}

// serveEnv 為部署環境可覆寫的設定；有明確給 flag 時以 flag 為準。
type serveEnv struct {
	Addr       string `env:"PRNGLAB_ADDR"`
	MaxSamples int    `env:"PRNGLAB_MAX_SAMPLES"`
	LogBuf     int    `env:"PRNGLAB_LOG_BUF"`
}

// applyEnv 以環境變數填入未被 flag 設定的欄位。
func (o *serveOpts) applyEnv(cmd *cobra.Command) error {
	var e serveEnv
	if err := env.Parse(&e); err != nil {
		return errs.WrapCode(err, errs.CodeInvalidArgument, "parse env")
	}
	flags := cmd.Flags()
	if e.Addr != "" && !flags.Changed("addr") {
		o.addr = e.Addr
	}
	if e.MaxSamples > 0 && !flags.Changed("max-samples") {
		o.maxSamples = e.MaxSamples
	}
	if e.LogBuf > 0 && !flags.Changed("log-buf") {
		o.logBuf = e.LogBuf
	}
	return nil
}

func newServeCmd(g *globalOpts) *cobra.Command {
	o := new(serveOpts)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator registry over HTTP",
		Long: `Start the HTTP API (GET / lists the routes). For example:
  prnglab serve --addr :5808 --log prod

PRNGLAB_ADDR, PRNGLAB_MAX_SAMPLES and PRNGLAB_LOG_BUF override the defaults
when the matching flag is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.applyEnv(cmd); err != nil {
				return err
			}
			mode, err := logger.ParseMode(g.logMode)
			if err != nil {
				return err
			}
			log, ah := logger.NewAsync(o.logBuf, mode)
			defer ah.Close()

			reg, err := g.registry(log)
			if err != nil {
				return err
			}
			return server.RunContext(cmd.Context(), &svrcfg.SvrCfg{
				Log:        log,
				Addr:       o.addr,
				MaxSamples: o.maxSamples,
				Registry:   reg,
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.addr, "addr", "a", svrcfg.DefaultAddr, "listen address")
	flags.IntVar(&o.maxSamples, "max-samples", svrcfg.DefaultMaxSamples, "max values per request")
	flags.IntVar(&o.logBuf, "log-buf", 4096, "async log buffer size")
	return cmd
}
