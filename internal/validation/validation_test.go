package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/transport"
)

func ptr[T any](v T) *T { return &v }

func violations(t *testing.T, err error) *Error {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr
}

func TestValidate_Product(t *testing.T) {
	t.Parallel()
	v := New()

	require.NoError(t, v.Validate(&transport.CreateProductRequest{Name: "Pen", Price: 1.5, Category: "office"}))

	err := v.Validate(&transport.CreateProductRequest{Price: -1})
	verr := violations(t, err)
	assert.Len(t, verr.Violations, 3)
	assert.Equal(t, "Name is required, Price must be greater than 0, Category is required", err.Error())
	assert.Equal(t, "name", verr.Violations[0].Field)
}

func TestValidate_ProductPatchOnlyChecksSentFields(t *testing.T) {
	t.Parallel()
	v := New()

	require.NoError(t, v.Validate(&transport.UpdateProductRequest{}))
	require.NoError(t, v.Validate(&transport.UpdateProductRequest{Price: ptr(3.0)}))

	err := v.Validate(&transport.UpdateProductRequest{Name: ptr(""), Price: ptr(0.0)})
	assert.Equal(t, "Name is required, Price must be greater than 0", err.Error())
}

func TestValidate_Cart(t *testing.T) {
	t.Parallel()
	v := New()

	ok := &transport.CartRequest{UserID: "u1", Products: []transport.CartItemRequest{{ProductID: "p1", Quantity: 1}}}
	require.NoError(t, v.Validate(ok))

	tests := []struct {
		name string
		req  *transport.CartRequest
		want string
	}{
		{name: "empty list", req: &transport.CartRequest{UserID: "u1", Products: []transport.CartItemRequest{}}, want: "At least one product is required"},
		{name: "missing list", req: &transport.CartRequest{UserID: "u1"}, want: "At least one product is required"},
		{name: "zero quantity", req: &transport.CartRequest{UserID: "u1", Products: []transport.CartItemRequest{{ProductID: "p1", Quantity: 0}}}, want: "Quantity must be at least 1"},
		{name: "negative quantity", req: &transport.CartRequest{UserID: "u1", Products: []transport.CartItemRequest{{ProductID: "p1", Quantity: -2}}}, want: "Quantity must be at least 1"},
		{name: "everything", req: &transport.CartRequest{Products: []transport.CartItemRequest{{Quantity: 0}}}, want: "User ID is required, Product ID is required, Quantity must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidate_OrderNestedPath(t *testing.T) {
	t.Parallel()
	v := New()

	require.NoError(t, v.Validate(&transport.PlaceOrderRequest{Items: []transport.OrderItemRequest{}}))

	err := v.Validate(&transport.PlaceOrderRequest{Items: []transport.OrderItemRequest{{ProductID: "p", Quantity: 1}, {ProductID: "q", Quantity: 0}}})
	verr := violations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "items[1].quantity", verr.Violations[0].Field)

	err = v.Validate(&transport.PlaceOrderRequest{})
	assert.Equal(t, "Items are required", err.Error())
}
