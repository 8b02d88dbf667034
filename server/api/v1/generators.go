package v1

import (
	"net/http"
	"strings"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/netsvr"
)

// GeneratorList 為 GET /v1/generators 的回應。
type GeneratorList struct {
	Generators []prnglab.Entry `json:"generators"`
}

// NextResponse 為 GET /v1/generators/{name}/next 的回應。
type NextResponse struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	View   string    `json:"view"`
	Values []float64 `json:"values"`
}

// ListGenerators 列出目前所有生成器（依名稱排序）。
func (h *Handler) ListGenerators(w http.ResponseWriter, r *http.Request) {
	var out GeneratorList
	_ = h.locked(func(reg *prnglab.Registry) error {
		out.Generators = reg.Entries()
		return nil
	})
	writeJSON(w, http.StatusOK, out)
}

// CreateGenerator 以 JSON 生成器設定建立（或取代）同名生成器，回傳 201 與新 entry。
func (h *Handler) CreateGenerator(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var entry prnglab.Entry
	err = h.locked(func(reg *prnglab.Registry) error {
		g, err := reg.CreateFromJSON(raw)
		if err != nil {
			return err
		}
		entry, _ = reg.Entry(g.Name())
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Next 取 count 個值（預設 1）；view=uniform 時改取 [0,1) 視圖。
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(netsvr.URLParam(r, "name"))
	count, err := queryInt(r, "count", 1)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if count < 1 || count > h.maxSamples {
		h.fail(w, r, errs.InvalidArgumentf("count %d out of range [1,%d]", count, h.maxSamples))
		return
	}
	view := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view")))
	switch view {
	case "":
		view = config.ViewRaw
	case config.ViewRaw, config.ViewUniform:
	default:
		h.fail(w, r, errs.InvalidArgumentf("unknown view %q (raw|uniform)", view))
		return
	}

	resp := NextResponse{Name: name, View: view}
	err = h.locked(func(reg *prnglab.Registry) error {
		e, ok := reg.Entry(name)
		if !ok {
			return errs.InvalidArgumentf("generator %q not found", name)
		}
		resp.Kind = e.Kind
		vs, err := reg.Sample(name, count, view == config.ViewUniform)
		resp.Values = vs
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteGenerator 移除指定生成器，回傳 204；不存在時回傳 400。
func (h *Handler) DeleteGenerator(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(netsvr.URLParam(r, "name"))
	var removed bool
	_ = h.locked(func(reg *prnglab.Registry) error {
		removed = reg.Remove(name)
		return nil
	})
	if !removed {
		h.fail(w, r, errs.InvalidArgumentf("generator %q not found", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
