package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/httperr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// MaxBodyBytes 為 POST body 上限。
const MaxBodyBytes = 4 << 20

// ============================================================
// ** Handler **
// ============================================================

// Handler 持有共用的 Registry；Registry 本身非併發安全，所有存取經由 mu 序列化。
type Handler struct {
	mu         sync.Mutex
	reg        *prnglab.Registry
	maxSamples int
	log        *slog.Logger
}

func NewHandler(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	if sCfg == nil || sCfg.Registry == nil {
		return nil, errs.NewFatal("v1 handler: registry is required")
	}
	log := sCfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		reg:        sCfg.Registry,
		maxSamples: max(1, sCfg.MaxSamples),
		log:        log.With("api", "v1"),
	}, nil
}

// locked 在持鎖狀態下執行 fn。
func (h *Handler) locked(fn func(reg *prnglab.Registry) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.reg)
}

// ============================================================
// ** helpers **
// ============================================================

// writeJSON 先編碼到記憶體再寫出，避免寫到一半才 error。
func writeJSON(w http.ResponseWriter, status int, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		httperr.Errs(w, errs.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	httperr.Log(h.log, r.Method+" "+r.URL.Path, err)
	httperr.Errs(w, err)
}

// readBody 讀取有上限的 body。
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errs.WrapCode(err, errs.CodeInvalidArgument, "read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errs.InvalidArgumentf("empty request body")
	}
	return raw, nil
}

// decodeStrict 以 DisallowUnknownFields 解析 JSON body。
func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.WrapCode(err, errs.CodeInvalidArgument, "decode request body")
	}
	return nil
}

func queryUint(r *http.Request, key string, def uint64) (uint64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.InvalidArgumentf("query %s=%q is not an unsigned integer", key, s)
	}
	return v, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.InvalidArgumentf("query %s=%q is not an integer", key, s)
	}
	return v, nil
}
