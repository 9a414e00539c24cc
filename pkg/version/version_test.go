package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0",
		"1.x",
		"-1.0",
		".1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestCheckPeer(t *testing.T) {
	tests := []struct {
		announced string
		wantErr   bool
	}{
		{Current, false},
		{"1.7", false},
		{"2.0", true},
		{"0.9", true},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.announced, func(t *testing.T) {
			err := CheckPeer(tt.announced)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPeer(%q) = %v, wantErr %v", tt.announced, err, tt.wantErr)
			}
		})
	}
}

func TestFirmwareSet(t *testing.T) {
	if Firmware == "" {
		t.Error("Firmware should not be empty")
	}
}
