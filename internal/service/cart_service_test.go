package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodhub-next/internal/constants"

	"github.com/stretchr/testify/require"
)

func TestCartAddLineMergesAndRecalculates(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	owner := env.createAccount(t, "owner@example.com", constants.RoleRestaurant)
	restaurant := env.createRestaurant(t, owner, "Pho 24")
	pho := env.createDish(t, restaurant.ID, "Pho Bo", 50000)
	tea := env.createDish(t, restaurant.ID, "Tra Da", 30000)

	cart, err := env.cart.GetCart(ctx, 7)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.NotEmpty(t, cart.CartID)

	_, err = env.cart.AddLine(ctx, 7, pho.ID, 1)
	require.NoError(t, err)
	_, err = env.cart.AddLine(ctx, 7, tea.ID, 1)
	require.NoError(t, err)
	cart, err = env.cart.AddLine(ctx, 7, pho.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, "Pho Bo", cart.Items[0].Name)
	require.Equal(t, 3, cart.TotalItems)
	require.Equal(t, "130000.00", cart.TotalPrice.String())

	reloaded, err := env.cart.GetCart(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, cart.CartID, reloaded.CartID)
	require.Equal(t, "130000.00", reloaded.TotalPrice.String())
}

func TestCartAddLineValidations(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ownerA := env.createAccount(t, "a@example.com", constants.RoleRestaurant)
	ownerB := env.createAccount(t, "b@example.com", constants.RoleRestaurant)
	dishA := env.createDish(t, env.createRestaurant(t, ownerA, "A").ID, "Banh Mi", 20000)
	dishB := env.createDish(t, env.createRestaurant(t, ownerB, "B").ID, "Com Tam", 40000)

	if _, err := env.cart.AddLine(ctx, 7, 9999, 1); !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound, got %v", err)
	}
	if _, err := env.cart.AddLine(ctx, 7, dishA.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := env.cart.AddLine(ctx, 7, dishA.ID, 1); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if _, err := env.cart.AddLine(ctx, 7, dishB.ID, 1); !errors.Is(err, ErrCartRestaurantMismatch) {
		t.Fatalf("expected ErrCartRestaurantMismatch, got %v", err)
	}
	if _, err := env.cart.AddLine(ctx, 7, dishA.ID, 99); !errors.Is(err, ErrQuantityExceeded) {
		t.Fatalf("expected ErrQuantityExceeded, got %v", err)
	}

	cart, err := env.cart.GetCart(ctx, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartUpdateRemoveAndClear(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	owner := env.createAccount(t, "owner@example.com", constants.RoleRestaurant)
	restaurant := env.createRestaurant(t, owner, "Pho 24")
	pho := env.createDish(t, restaurant.ID, "Pho Bo", 50000)
	tea := env.createDish(t, restaurant.ID, "Tra Da", 30000)

	_, err := env.cart.AddLine(ctx, 7, pho.ID, 1)
	require.NoError(t, err)
	_, err = env.cart.AddLine(ctx, 7, tea.ID, 1)
	require.NoError(t, err)

	// 价格快照在改数量时保持不变
	require.NoError(t, env.db.Model(pho).Update("price", "99000").Error)
	cart, err := env.cart.UpdateLineQuantity(ctx, 7, pho.ID, 4)
	require.NoError(t, err)
	require.Equal(t, "50000.00", cart.Items[0].Price.String())
	require.Equal(t, "230000.00", cart.TotalPrice.String())

	if _, err := env.cart.UpdateLineQuantity(ctx, 7, 424242, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	if _, err := env.cart.UpdateLineQuantity(ctx, 7, pho.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	cart, err = env.cart.RemoveLine(ctx, 7, 424242)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = env.cart.RemoveLine(ctx, 7, pho.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.TotalItems)
	require.Equal(t, "30000.00", cart.TotalPrice.String())

	previousID := cart.CartID
	cart, err = env.cart.Clear(ctx, 7)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.Equal(t, "0.00", cart.TotalPrice.String())
	require.NotEqual(t, previousID, cart.CartID)
}

func TestCartWithoutRedis(t *testing.T) {
	svc := NewCartService(nil, nil, 0)
	if _, err := svc.GetCart(context.Background(), 1); !errors.Is(err, ErrCartUnavailable) {
		t.Fatalf("expected ErrCartUnavailable, got %v", err)
	}
}
