package progress

// Band is the color band a mastery value falls into.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

// Thresholds are the two inclusive lower bounds for the high and medium
// bands. Each screen carries its own pair: these are independently tunable
// display cutoffs, not a shared business rule, so they are deliberately not
// unified.
type Thresholds struct {
	High   float64
	Medium float64
}

// SubjectThresholds is the pair used by the subject list badges.
var SubjectThresholds = Thresholds{High: 75, Medium: 50}

// TopicThresholds is the pair used by the topic list rows.
var TopicThresholds = Thresholds{High: 70, Medium: 40}

// BandFor maps a mastery value to its band. Lower bounds are inclusive:
// with a high threshold of 75, 75 is high and 74 is medium.
func BandFor(v float64, t Thresholds) Band {
	switch {
	case v >= t.High:
		return BandHigh
	case v >= t.Medium:
		return BandMedium
	default:
		return BandLow
	}
}
