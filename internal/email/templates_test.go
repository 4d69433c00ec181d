package email

import (
	"strings"
	"testing"
)

func TestRenderLeadWelcomeTemplate(t *testing.T) {
	content, err := renderEmailTemplate("lead_welcome.html", leadWelcomeEmailData{
		baseEmailData:   baseEmailData{Title: "t", Heading: "h"},
		FirstName:       "Ava",
		PropertyAddress: "1 Sunny Rd, AZ, 85001, Phoenix, USA",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(content, "Ava") || !strings.Contains(content, "1 Sunny Rd") {
		t.Fatal("rendered welcome email missing lead details")
	}
}

func TestRenderSalesAlertTemplate(t *testing.T) {
	content, err := renderEmailTemplate("sales_alert.html", salesAlertEmailData{
		baseEmailData:   baseEmailData{Title: "t", Heading: "h"},
		LeadID:          "0f8a9a2e-0000-0000-0000-000000000000",
		FullName:        "Ava Nguyen",
		Email:           "ava@example.com",
		Phone:           "+16025550134",
		PropertyAddress: "1 Sunny Rd, AZ, 85001, Phoenix, USA",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"Ava Nguyen", "ava@example.com", "+16025550134"} {
		if !strings.Contains(content, want) {
			t.Fatalf("rendered alert missing %q", want)
		}
	}
}
