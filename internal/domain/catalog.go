package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	Image       string          `json:"image" gorm:"size:255"`
	CategoryID  *uint64         `json:"category" gorm:"index"`
	Category    *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `json:"product" gorm:"not null;index"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AccountID uint64    `json:"user" gorm:"not null;index"`
	Account   *Account  `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
