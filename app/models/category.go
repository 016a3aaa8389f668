package models

import "gorm.io/gorm"

// Category groups products. Categories form a tree via ParentID; a root
// category has a nil parent.
type Category struct {
	gorm.Model
	Name     string     `gorm:"size:255;uniqueIndex;not null" json:"name"`
	ParentID *uint      `gorm:"index" json:"parent_id"`
	Children []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
}
