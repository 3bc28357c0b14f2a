package entity

// User represents a registered account. The ID is generated at registration
// and never changes; the email is stored case-normalized and unique.
type User struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	Email        string `gorm:"column:email;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash"`
	Name         string `gorm:"column:name"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}
