// Package config provides configuration management for the bin node.
//
// Configuration is loaded once at startup from a YAML file with environment
// variable overrides, validated, and handed to the core as an immutable
// snapshot. The core never persists configuration; the captive setup portal
// owns writes, outside this module.
//
// # Loading Order
//
//  1. Hardcoded defaults
//  2. YAML file values
//  3. BINNODE_* environment variables
//
// # Example
//
//	device:
//	  id: "bin-001"
//	  origin_angle: 0
//	  activated_angle: 90
//	  step_degrees: 10
//	transport:
//	  mode: "poll"
//	  http:
//	    base_url: "http://coordinator:5000"
//	logging:
//	  level: "info"
//	  format: "json"
package config
