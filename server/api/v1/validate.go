package v1

import (
	"net/http"
	"strings"

	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/stats"
)

// ValidateRequest 為 POST /v1/validate 的 body。
//
// cdf 為空時：std_dev > 0 視為 normal，否則為 uniform。
// chi2 的樣本需為整數；scale 為 true 時先將 [0,1) 樣本放大為 32-bit 整數。
type ValidateRequest struct {
	Samples    []float64 `json:"samples"`
	Test       string    `json:"test"`
	CDF        string    `json:"cdf,omitempty"`
	Mean       float64   `json:"mean,omitempty"`
	StdDev     float64   `json:"std_dev,omitempty"`
	Bins       int       `json:"bins,omitempty"`
	Alpha      float64   `json:"alpha,omitempty"`
	MinEntropy float64   `json:"min_entropy,omitempty"`
	Scale      bool      `json:"scale,omitempty"`
}

type ValidateResponse struct {
	Test   string       `json:"test"`
	N      int          `json:"n"`
	Result stats.Result `json:"result"`
	// Entropy 為熵檢定的原始 bit 值，Result.Statistic 為正規化後的值。
	Entropy *float64 `json:"entropy,omitempty"`
}

// Validate 對請求內的樣本執行單次檢定。
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req := new(ValidateRequest)
	if err := decodeStrict(raw, req); err != nil {
		h.fail(w, r, err)
		return
	}
	if len(req.Samples) > h.maxSamples {
		h.fail(w, r, errs.InvalidArgumentf("samples %d exceed limit %d", len(req.Samples), h.maxSamples))
		return
	}
	resp, err := runValidate(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func runValidate(req *ValidateRequest) (*ValidateResponse, error) {
	test := strings.ToLower(strings.TrimSpace(req.Test))
	resp := &ValidateResponse{Test: test, N: len(req.Samples)}
	switch test {
	case config.TestKS:
		cdf, err := pickCDF(req)
		if err != nil {
			return nil, err
		}
		res, err := stats.KolmogorovSmirnov(req.Samples, cdf)
		if err != nil {
			return nil, err
		}
		resp.Result = res

	case config.TestChi2:
		alpha := req.Alpha
		if alpha == 0 {
			alpha = config.DefaultAlpha
		}
		seq, err := stats.ToBig(req.Samples, req.Scale)
		if err != nil {
			return nil, err
		}
		bins := req.Bins
		if bins == 0 {
			bins = stats.DefaultBins(len(seq))
		}
		res, err := stats.ChiSquaredTest(seq, bins, alpha)
		if err != nil {
			return nil, err
		}
		resp.Result = res

	case config.TestEntropy:
		minH := req.MinEntropy
		if minH == 0 {
			minH = config.DefaultMinEntropy
		}
		if minH < 0 || minH > 1 {
			return nil, errs.InvalidArgumentf("min_entropy %v not in [0,1]", minH)
		}
		bits, err := stats.Entropy(req.Samples)
		if err != nil {
			return nil, err
		}
		h, err := stats.NormalizedEntropy(req.Samples)
		if err != nil {
			return nil, err
		}
		resp.Entropy = &bits
		resp.Result = stats.Result{Statistic: h, Threshold: minH, Passed: h >= minH}

	default:
		return nil, errs.InvalidArgumentf("unknown test %q (ks|chi2|entropy)", req.Test)
	}
	return resp, nil
}

func pickCDF(req *ValidateRequest) (func(float64) float64, error) {
	kind := strings.ToLower(strings.TrimSpace(req.CDF))
	if kind == "" {
		kind = config.CDFUniform
		if req.StdDev > 0 {
			kind = config.CDFNormal
		}
	}
	switch kind {
	case config.CDFUniform:
		return stats.UniformCDF, nil
	case config.CDFNormal:
		if !(req.StdDev > 0) {
			return nil, errs.InvalidArgumentf("normal cdf needs std_dev > 0, got %v", req.StdDev)
		}
		return stats.NormalCDF(req.Mean, req.StdDev), nil
	}
	return nil, errs.InvalidArgumentf("unknown cdf %q (uniform|normal)", req.CDF)
}
