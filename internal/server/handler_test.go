package server

import (
	"strings"
	"testing"

	"github.com/pali/mideair/internal/player"
	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/remote"
)

type fakeEmitter struct{}

func (fakeEmitter) Set(bool) {}

// syncGate plays each transmission to completion inside Start.
type syncGate struct {
	tick    func()
	enabled bool
}

func (g *syncGate) Enable() {
	g.enabled = true
	for g.enabled {
		g.tick()
	}
}

func (g *syncGate) Disable() { g.enabled = false }

// stuckGate never ticks, leaving the player busy after Start.
type stuckGate struct{}

func (stuckGate) Enable()  {}
func (stuckGate) Disable() {}

func newTestServer(t *testing.T, gate player.TimerGate) *Server {
	t.Helper()
	p := player.New(fakeEmitter{})
	if sg, ok := gate.(*syncGate); ok {
		sg.tick = p.Tick
	}
	p.AttachGate(gate)

	s, err := New(&Config{Listen: ":0"}, remote.New(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestDispatchSend(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{
		Action: "send",
		Power:  boolPtr(true),
		Mode:   "cool",
		Temp:   intPtr(22),
		Fan:    "high",
	})

	if !resp.OK {
		t.Fatalf("dispatch(send) = %+v, want ok", resp)
	}
	if resp.Busy {
		t.Error("busy after synchronous playback")
	}

	want := protocol.Command{
		Enabled:     true,
		Mode:        protocol.ModeCool,
		Temperature: 22,
		FanLevel:    protocol.FanHigh,
	}
	if got := s.remote.Command(); got != want {
		t.Errorf("command after send = %+v, want %+v", got, want)
	}
}

func TestDispatchSendPartialFields(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	// Only temp set; the other fields keep their defaults.
	resp := s.dispatch("test", request{Action: "send", Temp: intPtr(19)})
	if !resp.OK {
		t.Fatalf("dispatch(send) = %+v, want ok", resp)
	}

	got := s.remote.Command()
	if got.Temperature != 19 {
		t.Errorf("temperature = %d, want 19", got.Temperature)
	}
	if got.Enabled || got.Mode != protocol.ModeAuto || got.FanLevel != protocol.FanAuto {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestDispatchSendBadMode(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{Action: "send", Mode: "turbo"})
	if resp.OK {
		t.Fatal("dispatch accepted unknown mode")
	}
	if resp.Error == "" {
		t.Error("no error message for unknown mode")
	}
}

func TestDispatchSendBadFan(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{Action: "send", Fan: "hurricane"})
	if resp.OK {
		t.Fatal("dispatch accepted unknown fan level")
	}
}

func TestDispatchDeflector(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{Action: "deflector"})
	if !resp.OK {
		t.Fatalf("dispatch(deflector) = %+v, want ok", resp)
	}
}

func TestDispatchStatus(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{Action: "status"})
	if !resp.OK {
		t.Fatalf("dispatch(status) = %+v, want ok", resp)
	}
	if resp.Command == "" {
		t.Error("status response carries no command description")
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	s := newTestServer(t, &syncGate{})

	resp := s.dispatch("test", request{Action: "reboot"})
	if resp.OK {
		t.Fatal("dispatch accepted unknown action")
	}
	if !strings.Contains(resp.Error, "unknown action") {
		t.Errorf("error = %q, want unknown action", resp.Error)
	}
}

func TestDispatchWhileBusy(t *testing.T) {
	s := newTestServer(t, stuckGate{})

	if resp := s.dispatch("test", request{Action: "send"}); !resp.OK {
		t.Fatalf("first send = %+v, want ok", resp)
	}

	resp := s.dispatch("test", request{Action: "send"})
	if resp.OK {
		t.Fatal("second send accepted while transmission in flight")
	}
	if !resp.Busy {
		t.Error("busy flag not set while transmission in flight")
	}

	// Status still answers while busy.
	if resp := s.dispatch("test", request{Action: "status"}); !resp.OK || !resp.Busy {
		t.Errorf("status while busy = %+v, want ok and busy", resp)
	}
}
