package transcript

import "strings"

// StageTrace records how much text a stage consumed and produced.
type StageTrace struct {
	Stage       string
	InputBytes  int
	OutputBytes int
}

// Report summarizes a cleaning run.
type Report struct {
	RawBytes   int
	CleanBytes int
	Lines      int
	Stages     []StageTrace
}

// Empty reports whether cleaning left no usable text.
func (r Report) Empty() bool {
	return r.CleanBytes == 0
}

// CleanWithReport behaves like Clean and additionally returns a Report.
func CleanWithReport(raw string) (string, Report) {
	report := Report{
		RawBytes: len(raw),
		Stages:   make([]StageTrace, 0, len(Stages)),
	}
	text := raw
	for _, stage := range Stages {
		in := len(text)
		text = stage.Apply(text)
		report.Stages = append(report.Stages, StageTrace{
			Stage:       stage.Name,
			InputBytes:  in,
			OutputBytes: len(text),
		})
	}
	report.CleanBytes = len(text)
	if text != "" {
		report.Lines = strings.Count(text, "\n") + 1
	}
	return text, report
}
