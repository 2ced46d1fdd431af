// Package sensor provides the one-shot sensor reads the control loop
// samples each tick: a filtered ultrasonic distance measurement and a
// binary motion reading.
//
// The distance path wraps a raw time-of-flight ranger (HC-SR04 class
// hardware) and owns everything above the echo pin: the bounded measurement
// timeout, echo-to-centimetre conversion, dead-zone and range rejection,
// and a median-of-three noise filter. Rejected samples surface as errors so
// the caller can retain its last accepted value; they never produce a
// bogus distance.
//
// Raw hardware access lives behind the Ranger and MotionDetector
// interfaces. Simulated implementations for host builds are in sim.go.
package sensor
