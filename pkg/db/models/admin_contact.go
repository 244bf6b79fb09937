package models

import "time"

// AdminContact holds a WhatsApp number surfaced to the storefront for
// customer queries (the action=getAdmins list).
type AdminContact struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WhatsApp  string    `gorm:"column:whatsapp;not null;uniqueIndex"`
	Label     string    `gorm:"column:label;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
