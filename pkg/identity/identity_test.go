package identity

import (
	"errors"
	"testing"
)

func TestParseAndString(t *testing.T) {
	id, err := Parse("11:22:33:44:55:66", KindPublicID)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := [AddressLen]byte{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	if id.LEBytes() != want {
		t.Errorf("LEBytes() = % X, want % X", id.LEBytes(), want)
	}
	if got := id.String(); got != "11:22:33:44:55:66" {
		t.Errorf("String() = %q, want %q", got, "11:22:33:44:55:66")
	}
	if got := id.Describe(); got != "11:22:33:44:55:66/PUBLIC_ID" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestParseAcceptsDashesAndLowercase(t *testing.T) {
	id, err := Parse("aa-bb-cc-dd-ee-ff", KindPublic)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if id.String() != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("String() = %q", id.String())
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind AddressKind
		want error
	}{
		{"TooShort", "11:22:33:44:55", KindPublicID, ErrInvalidAddress},
		{"TooLong", "11:22:33:44:55:66:77", KindPublicID, ErrInvalidAddress},
		{"BadHex", "11:22:33:44:55:ZZ", KindPublicID, ErrInvalidAddress},
		{"WideOctet", "111:22:33:44:55:66", KindPublicID, ErrInvalidAddress},
		{"Empty", "", KindPublicID, ErrInvalidAddress},
		{"BadKind", "11:22:33:44:55:66", AddressKind(9), ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in, tt.kind)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestEqualRequiresKind(t *testing.T) {
	a := MustParse("11:22:33:44:55:66", KindPublicID)
	b := MustParse("11:22:33:44:55:66", KindRandomID)
	c := MustParse("11:22:33:44:55:66", KindPublicID)

	if a.Equal(b) {
		t.Error("identities with different kinds should not be equal")
	}
	if !a.Equal(c) {
		t.Error("identical identities should be equal")
	}
	if a.WithKind(KindRandomID) != b {
		t.Error("WithKind should only change the kind")
	}
}

func TestFromSlice(t *testing.T) {
	id, err := FromSlice([]byte{1, 2, 3, 4, 5, 6}, KindPublicID)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}
	if id.String() != "06:05:04:03:02:01" {
		t.Errorf("String() = %q", id.String())
	}

	if _, err := FromSlice([]byte{1, 2, 3}, KindPublicID); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("FromSlice(short) error = %v, want ErrInvalidAddress", err)
	}
}

func TestRandomSubtypes(t *testing.T) {
	rpa := MustParse("4A:00:00:00:00:01", KindRandom)
	static := MustParse("C0:00:00:00:00:01", KindRandom)
	public := MustParse("C0:00:00:00:00:01", KindPublic)

	if !rpa.IsResolvablePrivate() {
		t.Error("4A:... random should be resolvable private")
	}
	if rpa.IsStaticRandom() {
		t.Error("4A:... random should not be static")
	}
	if !static.IsStaticRandom() {
		t.Error("C0:... random should be static")
	}
	if public.IsStaticRandom() || public.IsResolvablePrivate() {
		t.Error("public address has no random sub-type")
	}
}

func TestIsZero(t *testing.T) {
	if !(DeviceIdentity{}).IsZero() {
		t.Error("zero value should be IsZero")
	}
	if MustParse("00:00:00:00:00:01", KindPublic).IsZero() {
		t.Error("non-zero address reported IsZero")
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range []AddressKind{KindPublic, KindRandom, KindPublicID, KindRandomID} {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	if _, err := ParseKind("bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("ParseKind(bogus) error = %v", err)
	}
	if AddressKind(7).String() != "UNKNOWN" {
		t.Error("unknown kind should stringify as UNKNOWN")
	}
	if !KindRandomID.IsIdentity() || KindRandom.IsIdentity() {
		t.Error("IsIdentity classification wrong")
	}
}
