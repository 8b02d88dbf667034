package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/synth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type paramsOpts struct {
	seed   uint64
	width  int
	mode   string
	mwc    bool
	asJSON bool
}

type paramsOut struct {
	Mode       string           `json:"mode,omitempty"`
	Seed       uint64           `json:"seed"`
	Width      int              `json:"width,omitempty"`
	FullPeriod *bool            `json:"full_period,omitempty"`
	LCG        *synth.LCGParams `json:"lcg,omitempty"`
	MWC        *synth.MWCParams `json:"mwc,omitempty"`
}

func newParamsCmd(_ *globalOpts) *cobra.Command {
	o := new(paramsOpts)
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Synthesize LCG or MWC parameters",
		Long: `Synthesize generator constants from a seed. For example:
  prnglab params --seed 1000 --width 16
  prnglab params --seed 2654435761 --width 32 --mode full
  prnglab params --seed 7 --mwc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := synthesize(o)
			if err != nil {
				return err
			}
			if o.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printParams(cmd, out)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Uint64Var(&o.seed, "seed", 0, "seed for the parameter search")
	flags.IntVarP(&o.width, "width", "w", 32, "modulus width (m = 2^width)")
	flags.StringVarP(&o.mode, "mode", "m", "legacy", "lcg mode: legacy|full|strict")
	flags.BoolVar(&o.mwc, "mwc", false, "synthesize MWC parameters instead of LCG")
	flags.BoolVar(&o.asJSON, "json", false, "print json")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func synthesize(o *paramsOpts) (*paramsOut, error) {
	out := &paramsOut{Seed: o.seed}
	if o.mwc {
		p, err := synth.GenerateMWCParams(o.seed)
		if err != nil {
			return nil, err
		}
		out.MWC = &p
		return out, nil
	}
	mode, err := synth.ParseMode(o.mode)
	if err != nil {
		return nil, err
	}
	p, err := synth.Generate(mode, o.seed, o.width)
	if err != nil {
		return nil, errs.Wrap(err, fmt.Sprintf("params (mode=%s)", mode))
	}
	out.Mode, out.Width, out.LCG = mode.String(), o.width, &p
	if p.Modulus > 1 {
		full, err := synth.FullPeriod(p)
		if err != nil {
			return nil, err
		}
		out.FullPeriod = &full
	}
	return out, nil
}

func printParams(cmd *cobra.Command, out *paramsOut) {
	p := message.NewPrinter(language.English)
	w := cmd.OutOrStdout()
	if out.MWC != nil {
		p.Fprintf(w, "mwc  seed=%d  a=%d  carry=%d\n", out.Seed, out.MWC.Multiplier, out.MWC.Carry)
		return
	}
	p.Fprintf(w, "lcg  mode=%s  width=%d  seed=%d\n", out.Mode, out.Width, out.Seed)
	p.Fprintf(w, "  a = %d\n  c = %d\n  m = %d\n", out.LCG.Multiplier, out.LCG.Increment, out.LCG.Modulus)
	if out.FullPeriod != nil {
		p.Fprintf(w, "  full period: %v\n", *out.FullPeriod)
	}
}
