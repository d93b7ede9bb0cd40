package handler

import (
	"encoding/json"
	"testing"

	"github.com/kitswap/kitswap-backend/internal/model"
)

func baseItem() model.Item {
	grade := 8
	typeID := uint64(3)
	return model.Item{
		ID:             1,
		UserID:         42,
		ItemTypeID:     &typeID,
		ItemName:       "Winter blazer",
		Category:       "School Uniforms",
		Size:           "M",
		Gender:         model.GenderBoy,
		ConditionGrade: &grade,
		Price:          250,
		Quantity:       2,
		Status:         model.ItemAvailable,
	}
}

func decodeBody(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return body
}

func TestApplyItemUpdatesSparse(t *testing.T) {
	item := baseItem()
	applyItemUpdates(&item, decodeBody(t, `{"price": 199.5, "quantity": 0}`))

	if item.Price != 199.5 {
		t.Errorf("price = %v", item.Price)
	}
	if item.Quantity != 0 {
		t.Errorf("quantity = %d", item.Quantity)
	}
	if !item.SoldOut() {
		t.Error("zero quantity should read as sold out")
	}
	// Absent keys keep their stored values.
	if item.ItemName != "Winter blazer" || item.Size != "M" || item.Gender != model.GenderBoy {
		t.Errorf("untouched fields changed: %+v", item)
	}
	if item.ConditionGrade == nil || *item.ConditionGrade != 8 {
		t.Error("condition grade changed without a key")
	}
}

func TestApplyItemUpdatesAllFields(t *testing.T) {
	item := baseItem()
	applyItemUpdates(&item, decodeBody(t, `{
		"item_name": "Summer dress",
		"category": "School Uniforms",
		"subcategory": "Girls",
		"sport": "",
		"school_name": "Parktown High",
		"club_name": "",
		"team": "",
		"size": "S",
		"gender": "girl",
		"condition_grade": 6,
		"price": 120,
		"front_photo": "/uploads/items/a.jpg",
		"back_photo": "/uploads/items/b.jpg",
		"description": "lightly worn",
		"quantity": 3,
		"status": "reserved",
		"item_type_id": 7
	}`))

	if item.ItemName != "Summer dress" || item.Subcategory != "Girls" || item.Size != "S" {
		t.Errorf("string fields: %+v", item)
	}
	if item.Gender != model.GenderGirl {
		t.Errorf("gender = %q", item.Gender)
	}
	if item.ConditionGrade == nil || *item.ConditionGrade != 6 {
		t.Error("condition grade not applied")
	}
	if item.Price != 120 || item.Quantity != 3 {
		t.Errorf("price/quantity: %v/%d", item.Price, item.Quantity)
	}
	if item.Status != model.ItemReserved {
		t.Errorf("status = %q", item.Status)
	}
	if item.ItemTypeID == nil || *item.ItemTypeID != 7 {
		t.Error("item type reference not applied")
	}
}

func TestApplyItemUpdatesIgnoresInvalid(t *testing.T) {
	item := baseItem()
	applyItemUpdates(&item, decodeBody(t, `{
		"gender": "martian",
		"status": "vaporized",
		"price": -5,
		"quantity": -1,
		"unknown_key": "whatever"
	}`))

	if item.Gender != model.GenderBoy {
		t.Errorf("unknown gender applied: %q", item.Gender)
	}
	if item.Status != model.ItemAvailable {
		t.Errorf("unknown status applied: %q", item.Status)
	}
	if item.Price != 250 {
		t.Errorf("negative price applied: %v", item.Price)
	}
	if item.Quantity != 2 {
		t.Errorf("negative quantity applied: %d", item.Quantity)
	}
}

func TestItemViewDerivesSoldOut(t *testing.T) {
	item := baseItem()
	item.Quantity = 0
	seller := model.User{Town: "Durban", Province: "KwaZulu-Natal"}

	v := newItemView(item, &seller)
	if !v.SoldOut {
		t.Error("sold_out not derived from quantity")
	}
	if v.SellerTown != "Durban" || v.SellerProvince != "KwaZulu-Natal" {
		t.Errorf("seller location: %q / %q", v.SellerTown, v.SellerProvince)
	}

	v = newItemView(item, nil)
	if v.SellerTown != "" || v.SellerProvince != "" {
		t.Error("seller location set without a seller")
	}
}
