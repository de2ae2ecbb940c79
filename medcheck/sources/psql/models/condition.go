package models

// Condition is reference data produced by the scraper and read by the
// symptom agent. Symptoms and Recommendations hold the truncated section
// text extracted from the source page.
type Condition struct {
	ID              int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"type:varchar(255);not null"`
	Symptoms        string `json:"symptoms" gorm:"type:text"`
	Recommendations string `json:"recommendations" gorm:"type:text"`
}

func (Condition) TableName() string {
	return "conditions"
}
