package models

import "time"

type Hotel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	City        string    `gorm:"type:varchar(100);not null;index" json:"city"`
	Address     string    `gorm:"type:varchar(255);not null" json:"address"`
	Description string    `gorm:"type:text" json:"description"`
	MainImage   *string   `gorm:"type:varchar(255)" json:"main_image"`
	ManagerID   *uint     `gorm:"uniqueIndex" json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Manager *User  `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"-"`
	Rooms   []Room `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}

// IsManagedBy reports whether userID is the hotel's manager.
func (h *Hotel) IsManagedBy(userID uint) bool {
	return h.ManagerID != nil && *h.ManagerID == userID
}
