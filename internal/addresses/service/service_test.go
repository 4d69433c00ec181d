package service

import (
	"testing"

	"solaris_crm_backend/internal/addresses/repository"
)

func TestFormatFull(t *testing.T) {
	got := FormatFull(repository.Address{
		Street:  "1 Sunny Rd",
		City:    "Phoenix",
		State:   "AZ",
		ZipCode: "85001",
		Country: "USA",
	})
	want := "1 Sunny Rd, AZ, 85001, Phoenix, USA"
	if got != want {
		t.Fatalf("FormatFull = %q, want %q", got, want)
	}
}

func TestDedupHashIsCaseInsensitive(t *testing.T) {
	a := dedupHash(repository.CreateAddressParams{
		Street: "1 Sunny Rd", City: "Phoenix", State: "AZ", ZipCode: "85001", Country: "USA",
	})
	b := dedupHash(repository.CreateAddressParams{
		Street: "1 SUNNY RD", City: "phoenix", State: "az", ZipCode: "85001", Country: "usa",
	})
	if a != b {
		t.Fatal("same address with different casing should hash identically")
	}

	c := dedupHash(repository.CreateAddressParams{
		Street: "2 Sunny Rd", City: "Phoenix", State: "AZ", ZipCode: "85001", Country: "USA",
	})
	if a == c {
		t.Fatal("different streets should not collide")
	}
}
