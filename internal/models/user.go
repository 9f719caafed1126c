package models

// Role is persisted by name, never by ordinal.
type Role string

const (
	RoleTechnician Role = "TECHNICIAN"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTechnician, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint   `json:"id" gorm:"column:user_id;primaryKey"`
	FirstName    string `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName     string `json:"last_name" gorm:"type:varchar(255);not null"`
	Phone        string `json:"phone" gorm:"type:varchar(50);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Role         Role   `json:"role" gorm:"type:varchar(50);not null"` // TECHNICIAN, MANAGER, ADMIN
	Active       bool   `json:"active" gorm:"not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
}

func (User) TableName() string { return "users" }
