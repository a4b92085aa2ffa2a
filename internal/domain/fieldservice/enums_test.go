package fieldservice

import "testing"

func TestEnumValidation(t *testing.T) {
	if !InfestationDegree(NormalizeEnum(" High ")).Valid() {
		t.Fatalf("expected normalized high to be valid")
	}
	if InfestationDegree("severe").Valid() {
		t.Fatalf("severe is not a known degree")
	}
	if !AreaFrequency("monthly").Valid() || AreaFrequency("daily").Valid() {
		t.Fatalf("frequency validation mismatch")
	}
	if !ConsumptionResult("partial").Valid() || ConsumptionResult("").Valid() {
		t.Fatalf("consumption validation mismatch")
	}
	if !AreaOutcome("capture").Valid() || AreaOutcome("escaped").Valid() {
		t.Fatalf("outcome validation mismatch")
	}
	if !MaterialsUsed("glue_trap").Valid() || MaterialsUsed("cheese").Valid() {
		t.Fatalf("materials validation mismatch")
	}
}
