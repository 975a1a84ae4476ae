package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/missoes-dashboard-api/internal/models"
)

// FeedbackRepository persiste retornos enviados pelo portal
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Save grava um feedback com carimbo de criacao do servidor
func (r *FeedbackRepository) Save(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("feedback storage not configured")
	}

	item := &models.Feedback{
		Type:      req.Type,
		Message:   req.Message,
		Email:     req.Email,
		Name:      req.Name,
		Page:      req.Page,
		CreatedAt: time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC",
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (type, message, email, name, page, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, item.Type, item.Message, item.Email, item.Name, item.Page, item.CreatedAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	item.ID = fmt.Sprintf("%d", id)
	return item, nil
}
