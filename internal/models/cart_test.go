package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartRecalculateSumsLines(t *testing.T) {
	cart := NewCart("cart-1", 7)
	cart.Items = append(cart.Items,
		CartLine{DishID: 1, Quantity: 2, Price: NewMoneyFromDecimal(decimal.NewFromInt(50000))},
		CartLine{DishID: 2, Quantity: 1, Price: NewMoneyFromDecimal(decimal.NewFromInt(30000))},
	)
	// 旧合计不可信
	cart.TotalItems = 99
	cart.Recalculate()

	if cart.TotalItems != 3 {
		t.Fatalf("unexpected total items: %d", cart.TotalItems)
	}
	if cart.TotalPrice.String() != "130000.00" {
		t.Fatalf("unexpected total price: %s", cart.TotalPrice.String())
	}
}

func TestCartRemoveLine(t *testing.T) {
	cart := NewCart("cart-1", 7)
	cart.Items = []CartLine{{DishID: 1, Quantity: 1}, {DishID: 2, Quantity: 3}}

	if cart.RemoveLine(9) {
		t.Fatalf("removing absent dish should report false")
	}
	if !cart.RemoveLine(1) {
		t.Fatalf("expected dish 1 removed")
	}
	cart.Recalculate()
	if len(cart.Items) != 1 || cart.Items[0].DishID != 2 || cart.TotalItems != 3 {
		t.Fatalf("unexpected cart after remove: %+v", cart)
	}
}

func TestMoneyJSONUsesTwoDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("12.345"))
	raw, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(raw) != `"12.35"` {
		t.Fatalf("unexpected money json: %s", raw)
	}

	var parsed Money
	if err := parsed.UnmarshalJSON([]byte(`49.9`)); err != nil {
		t.Fatalf("unmarshal money failed: %v", err)
	}
	if parsed.String() != "49.90" {
		t.Fatalf("unexpected parsed money: %s", parsed.String())
	}
}

func TestMoneyArithmeticAndParsing(t *testing.T) {
	price, err := ParseMoney(" 6.5 ")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if got := price.Times(3).Plus(NewMoneyFromInt(1)).String(); got != "20.50" {
		t.Fatalf("unexpected total: %s", got)
	}
	if _, err := ParseMoney("six"); err == nil {
		t.Fatalf("invalid amount should fail")
	}

	var m Money
	if err := m.UnmarshalJSON([]byte("null")); err != nil || !m.IsZero() {
		t.Fatalf("null should leave zero value, got %s err=%v", m.String(), err)
	}
	if err := m.UnmarshalJSON([]byte(`"abc"`)); err == nil {
		t.Fatalf("non-numeric string should fail")
	}
	if err := m.Scan("13.005"); err != nil || m.String() != "13.01" {
		t.Fatalf("scan should round to cents, got %s err=%v", m.String(), err)
	}
}
