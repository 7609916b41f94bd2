package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	FirstName string `gorm:"not null" json:"firstName"`                  // Capitalized first name
	LastName  string `gorm:"not null" json:"lastName"`                   // Capitalized last name
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"` // Lowercase email, unique
	Password  string `gorm:"not null" json:"-"`                          // Bcrypt hash
}
