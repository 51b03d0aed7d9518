package scheduler

// Status tracks where a task is in its quality search.
type Status int

const (
	// StatusPending: queued for the compression lane.
	StatusPending Status = iota
	// StatusEncoding: the compression lane is producing a candidate.
	StatusEncoding
	// StatusSizeCheck: candidate produced, size bound being evaluated.
	StatusSizeCheck
	// StatusScoring: candidate handed to the assessment pool.
	StatusScoring
	// StatusTargetMet: a candidate met both the size bound and the
	// score target and was accepted as the output.
	StatusTargetMet
	// StatusBestEffort: the search exhausted its quality range (or was
	// cut short) and the best size-satisfying candidate was accepted.
	StatusBestEffort
	// StatusAbortedSize: a candidate blew the size budget (or the range
	// was exhausted before any candidate existed); the original was
	// retained verbatim as the output.
	StatusAbortedSize
	// StatusFailed: an encode or score operation failed.
	StatusFailed
	// StatusCancelled: the run was cancelled before the task finished
	// and no best-effort candidate existed.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusEncoding:
		return "encoding"
	case StatusSizeCheck:
		return "size-check"
	case StatusScoring:
		return "scoring"
	case StatusTargetMet:
		return "target-met"
	case StatusBestEffort:
		return "best-effort"
	case StatusAbortedSize:
		return "aborted-size"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the search.
func (s Status) Terminal() bool {
	switch s {
	case StatusTargetMet, StatusBestEffort, StatusAbortedSize, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Attempt is one encode (and possibly score) of a task at a quality value.
// Scored is false when the candidate never reached the assessment pool.
type Attempt struct {
	Quality   int
	SizeRatio float64
	Score     float64
	Scored    bool
}

// bestEffort is the most recent candidate that satisfied the size bound.
// The search walks monotonically toward higher fidelity, so the most
// recent such candidate is also the best one seen.
type bestEffort struct {
	quality int
	score   float64
	path    string
}

// task is the per-file state record. Exactly one lane owns it at any
// instant; ownership moves with the pointer through the two channels,
// so no field needs a lock.
type task struct {
	source     string
	output     string
	sourceSize int64

	quality   int
	status    Status
	attempts  []Attempt
	best      *bestEffort
	candidate string // temp path of the candidate currently in flight
	sizeRatio float64

	finalQuality int
	finalScore   float64
	scored       bool
	err          error
}

func (t *task) record(quality int, sizeRatio float64, score float64, scored bool) {
	t.attempts = append(t.attempts, Attempt{
		Quality:   quality,
		SizeRatio: sizeRatio,
		Score:     score,
		Scored:    scored,
	})
}
