package models

type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"type:varchar(255);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
	Gender       string `json:"gender,omitempty" gorm:"type:varchar(10)"`
	Age          int    `json:"age,omitempty"`
}

func (User) TableName() string {
	return "users"
}
