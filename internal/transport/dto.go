package transport

type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"    validate:"required"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateProductRequest only validates the fields that were sent.
type UpdateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitnil,min=1"`
	Price       *float64 `json:"price"       validate:"omitnil,gt=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"    validate:"omitnil,min=1"`
	ImageURL    *string  `json:"imageUrl"`
}

type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"min=1"`
}

type CartRequest struct {
	UserID   string            `json:"userId"   validate:"required"`
	Products []CartItemRequest `json:"products" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"min=1"`
}

// PlaceOrderRequest.Items is checked for shape only; order contents come from
// the stored carts. UserID limits placement to that user's carts.
type PlaceOrderRequest struct {
	Items  []OrderItemRequest `json:"items"  validate:"required,dive"`
	UserID string             `json:"userId"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	UserRole string `json:"userRole"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
