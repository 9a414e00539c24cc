package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
)

func TestHelloCarriesIdentity(t *testing.T) {
	id := identity.MustParse("C0:01:02:03:04:05", identity.KindRandomID)

	data, err := EncodeFrame(Hello(id, "1.0"))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.Type != FrameHello {
		t.Fatalf("Type = %v, want HELLO", f.Type)
	}
	if f.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", f.Version)
	}
	if !bytes.Equal(f.Peer.Address, []byte{0x05, 0x04, 0x03, 0x02, 0x01, 0xC0}) {
		t.Errorf("Peer.Address = % X, want little-endian bytes", f.Peer.Address)
	}

	got, err := f.Peer.Identity()
	if err != nil {
		t.Fatalf("Identity failed: %v", err)
	}
	if got != id {
		t.Errorf("Identity() = %v, want %v", got.Describe(), id.Describe())
	}
}

func TestConnParamsFrame(t *testing.T) {
	data, err := EncodeFrame(ConnParams(ble.DefaultConnParams()))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.Params == nil || *f.Params != ble.DefaultConnParams() {
		t.Errorf("Params = %+v, want %+v", f.Params, ble.DefaultConnParams())
	}
}

func TestTerminateAndPing(t *testing.T) {
	data, _ := EncodeFrame(Terminate(ble.ReasonRemoteUserTerminated))
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if ble.DisconnectReason(f.Reason) != ble.ReasonRemoteUserTerminated {
		t.Errorf("Reason = 0x%02X, want 0x13", f.Reason)
	}

	data, _ = EncodeFrame(Pong(42))
	typ, err := PeekFrameType(data)
	if err != nil {
		t.Fatalf("PeekFrameType failed: %v", err)
	}
	if typ != FramePong {
		t.Errorf("PeekFrameType = %v, want PONG", typ)
	}
	f, _ = DecodeFrame(data)
	if f.Seq != 42 {
		t.Errorf("Seq = %d, want 42", f.Seq)
	}
}

func TestConnectedHandleZero(t *testing.T) {
	data, err := EncodeFrame(Connected(0))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.Type != FrameConnected || f.Handle != 0 {
		t.Errorf("frame = %+v", f)
	}
}

func TestFrameValidation(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  error
	}{
		{"unknown type", Frame{Type: 99}, ErrUnknownFrameType},
		{"hello without peer", Frame{Type: FrameHello, Version: "1.0"}, ErrMissingField},
		{"hello without version", Frame{Type: FrameHello, Peer: &PeerAddress{Address: make([]byte, 6)}}, ErrMissingField},
		{"hello short address", Frame{Type: FrameHello, Version: "1.0", Peer: &PeerAddress{Address: []byte{1, 2}}}, identity.ErrInvalidAddress},
		{"hello bad kind", Frame{Type: FrameHello, Version: "1.0", Peer: &PeerAddress{Address: make([]byte, 6), Kind: 9}}, identity.ErrInvalidKind},
		{"params missing", Frame{Type: FrameConnParams}, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncodeFrame(&tt.frame); !errors.Is(err, tt.want) {
				t.Errorf("EncodeFrame error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xFF, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
	if _, err := PeekFrameType([]byte{0xFF}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}

func TestFrameTypeString(t *testing.T) {
	if FrameConnParams.String() != "CONN_PARAMS" {
		t.Errorf("got %q", FrameConnParams.String())
	}
	if FrameType(77).String() != "FRAME_77" {
		t.Errorf("got %q", FrameType(77).String())
	}
}
