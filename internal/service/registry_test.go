package service

import (
	"reflect"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register("products", NewProductService(nil))
	r.Register("faq", NewFAQService(nil))

	if _, ok := r.Lookup("products"); !ok {
		t.Fatal("expected products to be registered")
	}
	if _, ok := r.Lookup("orders"); ok {
		t.Fatal("orders should not resolve")
	}
	if _, ok := r.Lookup(""); ok {
		t.Fatal("empty tag should not resolve")
	}
}

func TestRegistryTagsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("prices", NewPriceService(nil))
	r.Register("banners", NewBannerService(nil))
	r.Register("allergies", NewAllergyService(nil))

	want := []string{"allergies", "banners", "prices"}
	if got := r.Tags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tags: %v", got)
	}
}
