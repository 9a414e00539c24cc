// Package motion brings up the bag's motion sensor at boot.
//
// The bag carries an MPU-6050 on the I2C bus. Only initialization is part
// of the boot sequence: the driver is opened with the configured bus, pins
// and clock, and a failure aborts startup. Readings are not consumed yet.
package motion
