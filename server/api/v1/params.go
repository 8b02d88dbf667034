package v1

import (
	"net/http"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

// DefaultParamWidth 為未指定 width 時的 LCG 模數位寬。
const DefaultParamWidth = 32

type LCGParamsResponse struct {
	Mode       string `json:"mode"`
	Seed       uint64 `json:"seed"`
	Width      int    `json:"width"`
	FullPeriod bool   `json:"full_period"`
	synth.LCGParams
}

type MWCParamsResponse struct {
	Seed uint64 `json:"seed"`
	synth.MWCParams
}

// LCGParams 合成 LCG 常數：GET /v1/params/lcg?seed=&width=&mode=
// 參數合成不經過 Registry，無需持鎖。
func (h *Handler) LCGParams(w http.ResponseWriter, r *http.Request) {
	seed, err := queryUint(r, "seed", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !r.URL.Query().Has("seed") {
		h.fail(w, r, errs.InvalidArgumentf("query seed is required"))
		return
	}
	width, err := queryInt(r, "width", DefaultParamWidth)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	mode, err := synth.ParseMode(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode"))))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := synth.Generate(mode, seed, width)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := LCGParamsResponse{Mode: mode.String(), Seed: seed, Width: width, LCGParams: p}
	if p.Modulus > 1 {
		if resp.FullPeriod, err = synth.FullPeriod(p); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// MWCParams 合成 MWC 乘數與初始 carry：GET /v1/params/mwc?seed=
func (h *Handler) MWCParams(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("seed") {
		h.fail(w, r, errs.InvalidArgumentf("query seed is required"))
		return
	}
	seed, err := queryUint(r, "seed", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := synth.GenerateMWCParams(seed)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MWCParamsResponse{Seed: seed, MWCParams: p})
}
