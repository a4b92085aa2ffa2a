package fieldservice

import "strings"

type InfestationDegree string

const (
	InfestationNone     InfestationDegree = "none"
	InfestationLow      InfestationDegree = "low"
	InfestationModerate InfestationDegree = "moderate"
	InfestationHigh     InfestationDegree = "high"
)

func (d InfestationDegree) Valid() bool {
	switch d {
	case InfestationNone, InfestationLow, InfestationModerate, InfestationHigh:
		return true
	}
	return false
}

type AreaFrequency string

const (
	FrequencyWeekly    AreaFrequency = "weekly"
	FrequencyBiweekly  AreaFrequency = "biweekly"
	FrequencyMonthly   AreaFrequency = "monthly"
	FrequencyBimonthly AreaFrequency = "bimonthly"
	FrequencyQuarterly AreaFrequency = "quarterly"
)

func (f AreaFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyBimonthly, FrequencyQuarterly:
		return true
	}
	return false
}

type ConsumptionResult string

const (
	ConsumptionNone          ConsumptionResult = "none"
	ConsumptionPartial       ConsumptionResult = "partial"
	ConsumptionTotal         ConsumptionResult = "total"
	ConsumptionNotApplicable ConsumptionResult = "not_applicable"
)

func (c ConsumptionResult) Valid() bool {
	switch c {
	case ConsumptionNone, ConsumptionPartial, ConsumptionTotal, ConsumptionNotApplicable:
		return true
	}
	return false
}

type AreaOutcome string

const (
	OutcomeNoActivity       AreaOutcome = "no_activity"
	OutcomeActivityDetected AreaOutcome = "activity_detected"
	OutcomeCapture          AreaOutcome = "capture"
	OutcomeReplaced         AreaOutcome = "replaced"
)

func (o AreaOutcome) Valid() bool {
	switch o {
	case OutcomeNoActivity, OutcomeActivityDetected, OutcomeCapture, OutcomeReplaced:
		return true
	}
	return false
}

type MaterialsUsed string

const (
	MaterialsBaitBlock      MaterialsUsed = "bait_block"
	MaterialsPellets        MaterialsUsed = "pellets"
	MaterialsGlueTrap       MaterialsUsed = "glue_trap"
	MaterialsSnapTrap       MaterialsUsed = "snap_trap"
	MaterialsTrackingPowder MaterialsUsed = "tracking_powder"
)

func (m MaterialsUsed) Valid() bool {
	switch m {
	case MaterialsBaitBlock, MaterialsPellets, MaterialsGlueTrap, MaterialsSnapTrap, MaterialsTrackingPowder:
		return true
	}
	return false
}

// NormalizeEnum lower-cases and trims raw client input before enum validation.
func NormalizeEnum(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
