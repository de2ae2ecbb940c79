package dao

import (
	"context"

	"medcheck/medcheck/sources/psql/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatHistoryDAO struct {
	DB *pgxpool.Pool
}

func NewChatHistoryDAO(db *pgxpool.Pool) *ChatHistoryDAO {
	return &ChatHistoryDAO{DB: db}
}

func (dao *ChatHistoryDAO) SaveEntry(ctx context.Context, email, symptoms, response string) (*models.ChatHistory, error) {
	query := "INSERT INTO chat_history (user_email, symptom_input, llm_response) VALUES ($1, $2, $3) RETURNING id, user_email, symptom_input, llm_response, timestamp"
	row := dao.DB.QueryRow(ctx, query, email, symptoms, response)
	var entry models.ChatHistory
	err := row.Scan(&entry.ID, &entry.UserEmail, &entry.SymptomInput, &entry.LLMResponse, &entry.Timestamp)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (dao *ChatHistoryDAO) ListByEmail(ctx context.Context, email string) ([]models.ChatHistory, error) {
	query := "SELECT id, user_email, symptom_input, llm_response, timestamp FROM chat_history WHERE user_email = $1 ORDER BY timestamp DESC"
	rows, err := dao.DB.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var history []models.ChatHistory
	for rows.Next() {
		var entry models.ChatHistory
		err := rows.Scan(&entry.ID, &entry.UserEmail, &entry.SymptomInput, &entry.LLMResponse, &entry.Timestamp)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
