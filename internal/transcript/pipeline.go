package transcript

import (
	"fmt"
	"strings"
)

// Stage is one named step of the cleaning pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Stage names, in pipeline order.
const (
	StageStructural = "structural"
	StageInline     = "inline"
	StageDedupe     = "dedupe"
	StageRolling    = "rolling"
)

// Stages lists the cleaning steps in the order Clean applies them. The order
// matters: structural cleanup assumes real line breaks and must run before
// escaped newlines are expanded, and rolling-caption collapse only works once
// exact repeats are gone.
var Stages = []Stage{
	{Name: StageStructural, Apply: StructuralClean},
	{Name: StageInline, Apply: InlineClean},
	{Name: StageDedupe, Apply: TimestampDedupe},
	{Name: StageRolling, Apply: CollapseRollingRepeats},
}

// StageByName returns the stage registered under name.
func StageByName(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, stage := range Stages {
		if stage.Name == name {
			return stage, nil
		}
	}
	return Stage{}, fmt.Errorf("unknown transcript stage %q", name)
}

// StageNames returns the pipeline stage names in order.
func StageNames() []string {
	names := make([]string, len(Stages))
	for i, stage := range Stages {
		names[i] = stage.Name
	}
	return names
}

// Clean runs raw through every stage and returns the cleaned transcript. An
// empty result means the payload held no spoken text.
func Clean(raw string) string {
	text := raw
	for _, stage := range Stages {
		text = stage.Apply(text)
	}
	return text
}
