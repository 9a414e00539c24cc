// Package service provides high-level orchestration for the bag firmware.
//
// DeviceService ties the lower-level components together in boot order:
//   - trust store on the storage partition
//   - pairing authority deciding every connection
//   - event dispatcher and link simulator standing in for the radio
//   - mDNS advertising of the link simulator
//   - movement sensor initialization
//
// Example usage:
//
//	partition, err := persistence.MountFilePartition(dir)
//	config := service.DefaultDeviceConfig()
//
//	svc, err := service.NewDeviceService(partition, config)
//	svc.SetSensor(motion.NewSimSensor(motion.DefaultConfig()))
//	svc.Start(ctx)
//	defer svc.Stop()
package service
