package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	commands := []Command{
		{Enabled: true, Mode: ModeCool, Temperature: 24, FanLevel: FanAuto},
		{Enabled: true, Mode: ModeCool, Temperature: 17, FanLevel: FanLow},
		{Enabled: true, Mode: ModeHeat, Temperature: 30, FanLevel: FanHigh},
		{Enabled: true, Mode: ModeAuto, Temperature: 21, FanLevel: FanMedium},
		{Enabled: true, Mode: ModeFan, Temperature: 0, FanLevel: FanMedium},
		{Enabled: false},
	}

	for _, cmd := range commands {
		pkt := Encode(cmd)
		raw := Expand(pkt.Bytes())

		got, err := Decode(raw)
		if err != nil {
			t.Errorf("Decode(Expand(Encode(%v))) error = %v", cmd, err)
			continue
		}
		if got != pkt {
			t.Errorf("Decode round trip for %v = %+v, want %+v", cmd, got, pkt)
		}
	}
}

func TestDecodeBadComplement(t *testing.T) {
	raw := Expand([PacketSize]byte{0xB2, 0x1F, 0x40})
	raw[3] ^= 0x01

	_, err := Decode(raw)
	if !errors.Is(err, ErrBadComplement) {
		t.Errorf("Decode(corrupted) error = %v, want ErrBadComplement", err)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	raw := Expand([PacketSize]byte{0xB3, 0x1F, 0x40})

	_, err := Decode(raw)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("Decode(wrong magic) error = %v, want ErrBadMagic", err)
	}
}

func TestPacketTemperature(t *testing.T) {
	for celsius := TempMin; celsius <= TempMax; celsius++ {
		pkt := Encode(Command{Enabled: true, Mode: ModeCool, Temperature: celsius})
		got, ok := pkt.Temperature()
		if !ok || got != celsius {
			t.Errorf("Temperature() after encoding %d = (%d, %v), want (%d, true)", celsius, got, ok, celsius)
		}
	}

	none := Packet{Temp: TempNone}
	if _, ok := none.Temperature(); ok {
		t.Error("Temperature() for the none marker reported ok")
	}
}

func TestPacketFanLevel(t *testing.T) {
	tests := []struct {
		nibble uint8
		want   FanLevel
		ok     bool
	}{
		{0b0001, FanAuto, true},
		{0b1011, FanAuto, true}, // alternate automatic nibble
		{0b1001, FanLow, true},
		{0b0101, FanMedium, true},
		{0b0011, FanHigh, true},
		{0b0111, 0, false}, // power-off nibble
		{0b1111, 0, false},
	}

	for _, tt := range tests {
		got, ok := Packet{Fan: tt.nibble}.FanLevel()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("FanLevel() for %04b = (%v, %v), want (%v, %v)", tt.nibble, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPacketDescribe(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Enabled: false}, "power off"},
		{Command{Enabled: true, Mode: ModeCool, Temperature: 24}, "24 C"},
		{Command{Enabled: true, Mode: ModeFan, FanLevel: FanHigh}, "no temperature"},
		{Command{Enabled: true, Mode: ModeHeat, Temperature: 99}, "24 C"}, // invalid marker shares the 24C nibble
	}

	for _, tt := range tests {
		got := Encode(tt.cmd).Describe()
		if !strings.Contains(got, tt.want) {
			t.Errorf("Describe() for %v = %q, want substring %q", tt.cmd, got, tt.want)
		}
	}
}
