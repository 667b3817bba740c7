package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// CallRepository handles call record data operations
type CallRepository struct {
	db *gorm.DB
}

// NewCallRepository creates a new call repository
func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

// Create creates a new call record
func (r *CallRepository) Create(ctx context.Context, record *entities.CallRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByCallID retrieves a call record by vendor call ID
func (r *CallRepository) FindByCallID(ctx context.Context, callID string) (*entities.CallRecord, error) {
	var record entities.CallRecord
	if err := r.db.WithContext(ctx).Where("call_id = ?", callID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Save upserts a call record keyed on the vendor call ID. Webhook deliveries
// can arrive out of order, so the last write for a call wins column-wise.
func (r *CallRepository) Save(ctx context.Context, record *entities.CallRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	record.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "call_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"agent_id", "prompt_id", "raw_transcript", "processed_summary",
				"call_analysis", "recording_url", "access_token", "call_type",
				"status", "driver_name", "load_number", "phone_number", "llm_id",
				"started_at", "ended_at", "updated_at",
			}),
		}).
		Create(record).Error
}

// UpdateStatus updates only the status of a call record
func (r *CallRepository) UpdateStatus(ctx context.Context, callID string, status entities.CallStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.CallRecord{}).
		Where("call_id = ?", callID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// ListByAgentID retrieves call records for an agent, newest first
func (r *CallRepository) ListByAgentID(ctx context.Context, agentID string, limit int) ([]entities.CallRecord, error) {
	if limit == 0 {
		limit = 100
	}
	var records []entities.CallRecord
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByStatus retrieves call records in a given status, oldest first
func (r *CallRepository) ListByStatus(ctx context.Context, status entities.CallStatus, limit int) ([]entities.CallRecord, error) {
	if limit == 0 {
		limit = 100
	}
	var records []entities.CallRecord
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
