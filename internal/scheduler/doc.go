// Package scheduler implements the cooperative periodic-task scheduler at
// the heart of the bin node's control loop.
//
// The node has no preemption and no locks: a single goroutine calls Tick in
// a tight loop, and every registered task (sensing, actuation, link service,
// telemetry, command polling) runs synchronously inside that call. A task
// fires when its interval has elapsed on the wrapping millisecond timebase,
// at most once per tick, with no catch-up bursts after slow iterations.
//
// # Usage
//
//	sched := scheduler.New(logger)
//	sched.Register("distance", 200, sampleDistance)
//	sched.Register("actuator", 20, advanceActuator)
//	for {
//	    sched.Tick(clk.Millis())
//	    time.Sleep(time.Millisecond)
//	}
package scheduler
