package models

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Description string `json:"description"`
}

type SubCategory struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"uniqueIndex;size:120;not null" json:"name"`
	CategoryName string `gorm:"index;size:120" json:"category_name"`
	Description  string `json:"description"`
}
