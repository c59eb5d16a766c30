package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"         json:"id"`
	Name        string    `gorm:"not null"                    bson:"name"        json:"name"`
	Price       float64   `gorm:"not null"                    bson:"price"       json:"price"`
	Description string    `                                   bson:"description" json:"description,omitempty"`
	Category    string    `gorm:"index;not null"              bson:"category"    json:"category"`
	ImageURL    string    `                                   bson:"image_url"   json:"imageUrl,omitempty"`
	CreatedAt   time.Time `                                   bson:"created_at"  json:"createdAt"`
	UpdatedAt   time.Time `                                   bson:"updated_at"  json:"updatedAt"`
}

// CartItem rows keep Position so relational stores return items in list order.
type CartItem struct {
	ID        uint   `gorm:"primaryKey"                              bson:"-"          json:"-"`
	CartID    string `gorm:"index;not null;type:varchar(36)"         bson:"-"          json:"-"`
	Position  int    `gorm:"not null"                                bson:"-"          json:"-"`
	ProductID string `gorm:"not null"                                bson:"product_id" json:"productId"`
	Quantity  int    `gorm:"not null;check:quantity>0"               bson:"quantity"   json:"quantity"`
}

type Cart struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" bson:"_id"        json:"id"`
	UserID    string     `gorm:"index;not null"              bson:"user_id"    json:"userId"`
	Products  []CartItem `gorm:"foreignKey:CartID"           bson:"products"   json:"products"`
	CreatedAt time.Time  `                                   bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `                                   bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey"                      bson:"-"          json:"-"`
	OrderID   string `gorm:"index;not null;type:varchar(36)" bson:"-"          json:"-"`
	Position  int    `gorm:"not null"                        bson:"-"          json:"-"`
	ProductID string `gorm:"not null"                        bson:"product_id" json:"productId"`
	Quantity  int    `gorm:"not null;check:quantity>0"       bson:"quantity"   json:"quantity"`
}

type Order struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" bson:"_id"               json:"id"`
	UserID    string      `gorm:"index"                       bson:"user_id,omitempty" json:"userId,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"          bson:"items"             json:"items"`
	Total     float64     `gorm:"not null"                    bson:"total"             json:"total"`
	CreatedAt time.Time   `                                   bson:"created_at"        json:"createdAt"`
}

// OrderLine is an order item with its product resolved; Product is nil when
// the product no longer exists.
type OrderLine struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product"`
}

type OrderView struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId,omitempty"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"   bson:"_id"                    json:"id"`
	Username     string    `gorm:"not null"                      bson:"username"               json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"          bson:"email"                  json:"email"`
	PasswordHash string    `gorm:"not null"                      bson:"password"               json:"-"`
	AccessToken  string    `                                     bson:"access_token,omitempty" json:"-"`
	Role         string    `gorm:"not null;default:user"         bson:"user_role"              json:"userRole"`
	CreatedAt    time.Time `                                     bson:"created_at"             json:"createdAt"`
	UpdatedAt    time.Time `                                     bson:"updated_at"             json:"updatedAt"`
}
