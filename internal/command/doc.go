// Package command implements the idempotent command channel.
//
// Commands arrive from the coordinator over whichever transport binding is
// active: as a poll response or as an asynchronous push delivery. Both
// paths can duplicate and reorder, so application is keyed on command
// identity: a command mutates state if and only if its id exceeds the
// highest id already applied, which makes retransmission and at-least-once
// delivery free no-ops.
//
// Notification actions (fill-level indicator signals) are the one
// exception: they carry no persisted state to duplicate-guard, so they
// drive the indicator on every receipt regardless of id staleness, while
// still advancing the id watermark.
package command
