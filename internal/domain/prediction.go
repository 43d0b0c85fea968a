package domain

// Binary classifier output.
type Label int

const (
	LabelNoRisk Label = 0
	LabelRisk   Label = 1
)

func (l Label) Valid() bool { return l == LabelNoRisk || l == LabelRisk }

// Terminal state reached by one pipeline run.
type Outcome string

const (
	// Label 0: geocoding and hospital search are skipped.
	OutcomeNoRisk Outcome = "no_risk"
	// Label 1 but the pincode could not be geocoded.
	OutcomePincodeUnresolved Outcome = "pincode_unresolved"
	// Label 1 and the hospital search succeeded; the list may be empty.
	OutcomeHospitalsListed Outcome = "hospitals_listed"
	// Label 1, location known, but the hospital search itself failed.
	OutcomeHospitalSearchFailed Outcome = "hospital_search_failed"
)

// Result of one prediction cycle.
// A new value is produced on every run and replaces the previous one wholesale.
type PredictionResult struct {
	Label     Label
	Outcome   Outcome
	Pincode   string
	Location  *Coordinates
	Hospitals []HospitalRecord
	// Message is the headline shown to the user for the terminal state.
	Message string
	// Warning carries the failure detail for unresolved or failed states.
	Warning string
}

func (r PredictionResult) AtRisk() bool { return r.Label == LabelRisk }
