package models

import "time"

// ChatHistory is one symptom query and the answer it received. UserEmail is
// a weak reference to users.email, not a foreign key: history survives (and
// goes unlinked) if the address ever changes.
type ChatHistory struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserEmail    string    `json:"user_email" gorm:"type:varchar(255);index"`
	SymptomInput string    `json:"symptom_input" gorm:"type:text"`
	LLMResponse  string    `json:"llm_response" gorm:"type:text"`
	Timestamp    time.Time `json:"timestamp" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
