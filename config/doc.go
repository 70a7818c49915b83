// Package config loads the one process-wide tuning knob (the scheduling
// quantum both worker loops sleep between iterations) and, for the
// bundled test harness, a static network topology: a set of router names
// and the direct links between them. The format is YAML, matching the
// configuration format the wider pack reaches for.
package config
