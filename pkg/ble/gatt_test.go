package ble

import (
	"testing"

	"github.com/google/uuid"
)

func TestGATTLayout(t *testing.T) {
	svc := BagService()
	if svc.UUID.String() != "15274059-8c2f-4a3f-8130-0c240179d72f" {
		t.Errorf("service UUID = %s", svc.UUID)
	}

	setup, ok := svc.Characteristic(SetupCharUUID)
	if !ok {
		t.Fatal("setup characteristic missing")
	}
	if !setup.Props.Has(PropWrite) || setup.Props.Has(PropNotify) {
		t.Errorf("setup props = 0x%02X, want write only", uint8(setup.Props))
	}

	data, ok := svc.Characteristic(DataCharUUID)
	if !ok {
		t.Fatal("data characteristic missing")
	}
	if !data.Props.Has(PropRead | PropNotify) {
		t.Errorf("data props = 0x%02X, want read|notify", uint8(data.Props))
	}
	if data.UUID.String() != "6b0d555e-d962-4219-89ae-d7c32efa7dcf" {
		t.Errorf("data UUID = %s", data.UUID)
	}

	if _, ok := svc.Characteristic(uuid.New()); ok {
		t.Error("unexpected characteristic for random UUID")
	}
}

func TestDefaultAdvertisement(t *testing.T) {
	adv := DefaultAdvertisement()
	if adv.Name != "Weight Aware Bag" {
		t.Errorf("Name = %q", adv.Name)
	}
	if adv.ServiceUUID != ServiceUUID || !adv.Connectable {
		t.Errorf("advertisement = %+v", adv)
	}
}
