package model

import "testing"

func TestParseRole(t *testing.T) {
	for _, in := range []string{"seller", "SELLER", " Seller "} {
		role, ok := ParseRole(in)
		if !ok || role != RoleSeller {
			t.Errorf("ParseRole(%q) = %q, %v", in, role, ok)
		}
	}
	if role, ok := ParseRole("admin"); !ok || role != RoleAdmin {
		t.Errorf("ParseRole(admin) = %q, %v", role, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Error("unknown role accepted")
	}
	if _, ok := ParseRole(""); ok {
		t.Error("empty role accepted")
	}
}

func TestParseGender(t *testing.T) {
	for _, in := range []string{"boy", "BOY", " Girl ", "unisex"} {
		if _, ok := ParseGender(in); !ok {
			t.Errorf("ParseGender(%q) rejected", in)
		}
	}
	if _, ok := ParseGender("other"); ok {
		t.Error("unknown gender accepted")
	}
}

func TestItemSoldOut(t *testing.T) {
	i := Item{Quantity: 2}
	if i.SoldOut() {
		t.Error("quantity 2 reported sold out")
	}
	i.Quantity = 0
	if !i.SoldOut() {
		t.Error("quantity 0 not reported sold out")
	}
}
