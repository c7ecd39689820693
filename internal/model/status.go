package model

import (
	"regexp"
	"strconv"
)

// StatusReport is the read-only probe result: the text of any in-progress
// surface, whether the host application is busy, and all open alerts.
type StatusReport struct {
	Activity []string           `json:"activity,omitempty" yaml:"activity,omitempty"`
	Busy     bool               `json:"busy"               yaml:"busy"`
	Alerts   []PromptDescriptor `json:"alerts"             yaml:"alerts"`
}

var stepRe = regexp.MustCompile(`^Step (\d+) of (\d+)`)

// Progress derives a completion fraction from activity text of the form
// "Step N of M". The second return is false when no such line is present.
func (s StatusReport) Progress() (float64, bool) {
	for _, line := range s.Activity {
		m := stepRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cur, err1 := strconv.Atoi(m[1])
		total, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || total == 0 {
			continue
		}
		return float64(cur) / float64(total), true
	}
	return 0, false
}
