package scheduler

import "fmt"

// Outcome is the terminal state of one file's quality search.
type Outcome struct {
	Source string
	Output string
	Status Status

	// FinalQuality is the quality of the accepted candidate. Zero and
	// meaningless for aborted, failed and cancelled tasks.
	FinalQuality int
	// FinalScore is the accepted candidate's score; valid when Scored.
	FinalScore float64
	Scored     bool

	Attempts []Attempt
	Err      error
}

// Summary counts outcomes by terminal status.
type Summary struct {
	TargetMet  int
	BestEffort int
	Aborted    int
	Failed     int
	Cancelled  int
}

// Summarize tallies a batch of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusTargetMet:
			s.TargetMet++
		case StatusBestEffort:
			s.BestEffort++
		case StatusAbortedSize:
			s.Aborted++
		case StatusFailed:
			s.Failed++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

func (s Summary) Total() int {
	return s.TargetMet + s.BestEffort + s.Aborted + s.Failed + s.Cancelled
}

func (s Summary) String() string {
	return fmt.Sprintf("%d target met, %d best effort, %d size aborted, %d failed, %d cancelled",
		s.TargetMet, s.BestEffort, s.Aborted, s.Failed, s.Cancelled)
}
