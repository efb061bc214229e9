package models

import "time"

// SettingPhone names the site setting that holds the WhatsApp number.
const SettingPhone = "Telefono"

type SiteSetting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Value string `json:"value"`
}

type SocialLink struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null" json:"name"`
	Link string `json:"link"`
}

// PaymentMethod is an option offered in the last checkout step.
type PaymentMethod struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:60;not null" json:"name"`
	Description string    `json:"description"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FAQ struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Question string `gorm:"not null" json:"question"`
	Answer   string `gorm:"not null" json:"answer"`
	Category string `json:"category"`
	Position int    `json:"order_position"`
	Active   bool   `gorm:"not null" json:"active"`
}

// Lead is a contact-form submission.
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
