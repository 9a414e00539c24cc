package discovery

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testServiceUUID = uuid.MustParse("15274059-8c2f-4a3f-8130-0c240179d72f")

func testInfo() *DeviceInfo {
	return &DeviceInfo{
		Instance:    "Weight Aware Bag-1a2b",
		Name:        "Weight Aware Bag",
		ServiceUUID: testServiceUUID,
		Version:     "1.0",
		Firmware:    "0.1.0",
		Port:        7430,
	}
}

func TestEncodeTXT(t *testing.T) {
	txt := EncodeTXT(testInfo())

	assert.Equal(t, "Weight Aware Bag", txt[TXTKeyName])
	assert.Equal(t, testServiceUUID.String(), txt[TXTKeyService])
	assert.Equal(t, "0", txt[TXTKeyPaired])
	assert.Equal(t, "1.0", txt[TXTKeyVersion])
	assert.Equal(t, "0.1.0", txt[TXTKeyFirmware])

	info := testInfo()
	info.Paired = true
	info.Version = ""
	info.Firmware = ""
	txt = EncodeTXT(info)
	assert.Equal(t, "1", txt[TXTKeyPaired])
	assert.NotContains(t, txt, TXTKeyVersion)
	assert.NotContains(t, txt, TXTKeyFirmware)
}

func TestDecodeTXT(t *testing.T) {
	info := testInfo()
	info.Paired = true

	got, err := DecodeTXT(StringsToTXTRecords(TXTRecordsToStrings(EncodeTXT(info))))
	require.NoError(t, err)
	assert.Equal(t, info.Name, got.Name)
	assert.Equal(t, info.ServiceUUID, got.ServiceUUID)
	assert.True(t, got.Paired)
	assert.Equal(t, "1.0", got.Version)
	assert.Equal(t, "0.1.0", got.Firmware)
}

func TestDecodeTXTErrors(t *testing.T) {
	valid := func() TXTRecordMap { return EncodeTXT(testInfo()) }

	tests := []struct {
		name    string
		mutate  func(TXTRecordMap)
		wantErr error
	}{
		{"missing name", func(m TXTRecordMap) { delete(m, TXTKeyName) }, ErrMissingRequired},
		{"empty name", func(m TXTRecordMap) { m[TXTKeyName] = "" }, ErrMissingRequired},
		{"missing service", func(m TXTRecordMap) { delete(m, TXTKeyService) }, ErrMissingRequired},
		{"bad service", func(m TXTRecordMap) { m[TXTKeyService] = "not-a-uuid" }, ErrInvalidTXTRecord},
		{"missing paired", func(m TXTRecordMap) { delete(m, TXTKeyPaired) }, ErrMissingRequired},
		{"bad paired", func(m TXTRecordMap) { m[TXTKeyPaired] = "yes" }, ErrInvalidTXTRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txt := valid()
			tt.mutate(txt)
			_, err := DecodeTXT(txt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTXTRecordsToStringsSorted(t *testing.T) {
	strs := TXTRecordsToStrings(TXTRecordMap{"svc": "x", "name": "n", "paired": "0"})
	assert.Equal(t, []string{"name=n", "paired=0", "svc=x"}, strs)
	assert.Equal(t, 3*1+len("name=n")+len("paired=0")+len("svc=x"), TXTRecordSize(strs))
}

func TestStringsToTXTRecords(t *testing.T) {
	txt := StringsToTXTRecords([]string{"a=1", "b=x=y", "flag", ""})
	assert.Equal(t, TXTRecordMap{"a": "1", "b": "x=y", "flag": ""}, txt)
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "Weight Aware Bag-1a2b", InstanceName("Weight Aware Bag", "1a2b"))
	assert.Equal(t, "Weight Aware Bag", InstanceName("Weight Aware Bag", ""))

	long := strings.Repeat("x", 80)
	got := InstanceName(long, "1a2b")
	assert.Len(t, got, MaxInstanceNameLen)
	assert.True(t, strings.HasSuffix(got, "-1a2b"))
	assert.NoError(t, ValidateInstanceName(got))

	assert.Len(t, InstanceName(long, ""), MaxInstanceNameLen)
}

func TestValidateInstanceName(t *testing.T) {
	assert.ErrorIs(t, ValidateInstanceName(""), ErrInstanceNameTooLong)
	assert.ErrorIs(t, ValidateInstanceName(strings.Repeat("x", 64)), ErrInstanceNameTooLong)
	assert.NoError(t, ValidateInstanceName("bag"))
}

func TestDeviceInfoValidate(t *testing.T) {
	assert.NoError(t, testInfo().Validate())

	info := testInfo()
	info.Name = ""
	assert.ErrorIs(t, info.Validate(), ErrMissingRequired)

	info = testInfo()
	info.ServiceUUID = uuid.Nil
	assert.ErrorIs(t, info.Validate(), ErrMissingRequired)

	info = testInfo()
	info.Instance = ""
	assert.Equal(t, info.Name, info.InstanceName())
	assert.NoError(t, info.Validate())
}

func TestServiceLinkAddress(t *testing.T) {
	svc := &Service{Port: 7430}
	_, ok := svc.LinkAddress()
	assert.False(t, ok)

	svc.Addresses = []string{"192.168.1.20", "fe80::1"}
	addr, ok := svc.LinkAddress()
	assert.True(t, ok)
	assert.Equal(t, "192.168.1.20:7430", addr)

	svc.Addresses = []string{"fe80::1"}
	addr, _ = svc.LinkAddress()
	assert.Equal(t, "[fe80::1]:7430", addr)
}
