// Package device holds the shared device state and the lid state machine:
// the bounded-step actuator driver, the auto/manual policy, and the
// fill-level indicator.
//
// # Ownership
//
// State is a single shared instance owned exclusively by the control
// goroutine. Every component that reads or writes it (policy, actuator,
// command application, telemetry snapshotting) runs synchronously inside a
// scheduler tick, so there are no concurrent writers by construction and no
// synchronization primitives anywhere in the package.
//
// # Invariants
//
//   - CurrentPosition changes only through Actuator.Advance, one bounded
//     step per call, never overshooting the target.
//   - TargetPosition changes only through Policy.Evaluate or
//     Actuator.RequestTarget, and only while the actuator is at rest
//     (CurrentPosition == TargetPosition). A new target can therefore never
//     reverse a stroke that is already in progress.
//   - LastCommandID is monotonically non-decreasing.
package device
