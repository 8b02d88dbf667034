package server

import (
	"context"
	"testing"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

func TestRunRejectsBadConfig(t *testing.T) {
	if err := RunContext(context.Background(), &svrcfg.SvrCfg{}); err == nil {
		t.Fatalf("missing registry should fail")
	}
	reg, err := prnglab.New(prnglab.WithSeed(1))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := RunWithSvr(context.Background(), &svrcfg.SvrCfg{Registry: reg}, nil); err == nil {
		t.Fatalf("nil svr should fail")
	}
	if err := RunWithSvr(context.Background(), &svrcfg.SvrCfg{Registry: reg}, &netsvr.ChiAdapter{}); err == nil {
		t.Fatalf("zero ChiAdapter should not be ready")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	reg, err := prnglab.New(prnglab.WithSeed(1))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := RunContext(ctx, &svrcfg.SvrCfg{Registry: reg, Addr: "127.0.0.1:0"}); err != nil {
		t.Fatalf("canceled run should stop cleanly: %v", err)
	}
}
