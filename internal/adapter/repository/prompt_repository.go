package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// PromptRepository handles conversation prompt data operations
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create creates a new prompt
func (r *PromptRepository) Create(ctx context.Context, prompt *entities.ConversationPrompt) error {
	if prompt == nil {
		return errors.New("prompt cannot be nil")
	}
	return r.db.WithContext(ctx).Create(prompt).Error
}

// FindByID retrieves a prompt by ID
func (r *PromptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ConversationPrompt, error) {
	var prompt entities.ConversationPrompt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

// FindActiveByAgentID retrieves the active prompt linked to an agent
func (r *PromptRepository) FindActiveByAgentID(ctx context.Context, agentID string) (*entities.ConversationPrompt, error) {
	var prompt entities.ConversationPrompt
	err := r.db.WithContext(ctx).
		Joins("JOIN agent_prompts ON agent_prompts.prompt_id = conversation_prompts.id").
		Where("agent_prompts.agent_id = ? AND agent_prompts.is_active = ?", agentID, true).
		First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

// LinkToAgent activates a prompt for an agent, deactivating any other link
func (r *PromptRepository) LinkToAgent(ctx context.Context, agentID string, promptID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.AgentPrompt{}).
			Where("agent_id = ?", agentID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		link := entities.AgentPrompt{
			ID:       uuid.New(),
			AgentID:  agentID,
			PromptID: promptID,
			IsActive: true,
		}
		return tx.Create(&link).Error
	})
}
