package domain

import "testing"

func TestParseStatusCaseInsensitive(t *testing.T) {
	cases := []struct {
		label string
		want  Status
	}{
		{"new", StatusNew},
		{"NEW", StatusNew},
		{"Contacted", StatusContacted},
		{" converted ", StatusConverted},
		{"disqualified", StatusDisqualified},
		{"LoSt", StatusLost},
	}

	for _, tc := range cases {
		got, err := ParseStatus(tc.label)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", tc.label, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestParseStatusRejectsUnknownLabels(t *testing.T) {
	for _, label := range []string{"", "Qualified", "converted!", "New Lead"} {
		if _, err := ParseStatus(label); err == nil {
			t.Fatalf("ParseStatus(%q) should fail", label)
		}
	}
}

func TestTerminalStatusesAreAbsorbing(t *testing.T) {
	for _, from := range []Status{StatusConverted, StatusDisqualified, StatusLost} {
		for _, to := range []Status{StatusNew, StatusContacted, StatusLost, StatusDisqualified} {
			if from == to {
				continue
			}
			if err := from.CanTransitionTo(to); err == nil {
				t.Fatalf("transition %s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestConvertedIsUnreachableByDirectUpdate(t *testing.T) {
	for _, from := range []Status{StatusNew, StatusContacted} {
		if err := from.CanTransitionTo(StatusConverted); err == nil {
			t.Fatalf("direct transition %s -> Converted should be rejected", from)
		}
	}
}

func TestOpenTransitionsAllowed(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusNew, StatusContacted},
		{StatusNew, StatusDisqualified},
		{StatusNew, StatusLost},
		{StatusContacted, StatusLost},
		{StatusContacted, StatusDisqualified},
		{StatusContacted, StatusContacted},
	}
	for _, tc := range allowed {
		if err := tc.from.CanTransitionTo(tc.to); err != nil {
			t.Fatalf("transition %s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
	}
}

func TestParsePropertyType(t *testing.T) {
	for label, want := range map[string]PropertyType{
		"house":      PropertyTypeHouse,
		"Apartment":  PropertyTypeApartment,
		"COMMERCIAL": PropertyTypeCommercial,
	} {
		got, err := ParsePropertyType(label)
		if err != nil {
			t.Fatalf("ParsePropertyType(%q) returned error: %v", label, err)
		}
		if got != want {
			t.Fatalf("ParsePropertyType(%q) = %s, want %s", label, got, want)
		}
	}

	if _, err := ParsePropertyType("Castle"); err == nil {
		t.Fatal("ParsePropertyType should reject unknown labels")
	}
}
