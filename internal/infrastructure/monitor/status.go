package monitor

import "time"

type Status struct {
	Backend   string         `json:"backend" yaml:"backend"`
	Online    bool           `json:"online" yaml:"online"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	Slots     map[string]int `json:"slots" yaml:"slots"`
	LastCheck time.Time      `json:"lastCheck" yaml:"lastCheck"`
}
