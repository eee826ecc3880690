package models

import (
	"time"

	"gorm.io/gorm"
)

// Country is reference data a profile can point at.
type Country struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CountryName string         `json:"country_name" gorm:"size:100;not null"`
	CountryCode int            `json:"country_code"`
	ISO         string         `json:"iso" gorm:"size:3;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// City belongs to one country.
type City struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CityName  string         `json:"city_name" gorm:"size:100;not null"`
	CountryID uint           `json:"country_id" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Country *Country `json:"-" gorm:"foreignKey:CountryID"`
}

// CityQuery is bound from the city listing's query string.
type CityQuery struct {
	CountryID uint `query:"countryId"`
}
