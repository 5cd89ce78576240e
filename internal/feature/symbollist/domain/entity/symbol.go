// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a stock ticker symbol in the catalog.
// It carries the last known quote shown in the watchlist and details panel.
type Symbol struct {
	ID            uint      `gorm:"primaryKey"`
	Code          string    `gorm:"size:20;not null;uniqueIndex"`
	Name          string    `gorm:"size:255;not null"`
	Market        string    `gorm:"size:100;not null"`
	Price         float64   `gorm:"not null;default:0"`
	Change        float64   `gorm:"not null;default:0"`
	ChangePercent float64   `gorm:"not null;default:0"`
	IsActive      bool      `gorm:"not null;default:true"`
	SortKey       int       `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Quote is the price snapshot written back to the catalog by a refresh.
type Quote struct {
	Price         float64
	Change        float64
	ChangePercent float64
}
