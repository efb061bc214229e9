package models

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&Category{},
		&SubCategory{},
		&Product{},
		&StockMovement{},
		&Order{},
		&OrderItem{},
		&Sale{},
		&User{},
		&PaymentMethod{},
		&SiteSetting{},
		&SocialLink{},
		&FAQ{},
		&Lead{},
	}
}
