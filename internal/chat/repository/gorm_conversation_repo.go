package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

type GormConversationRepository struct {
	db *gorm.DB
}

var _ ConversationRepository = (*GormConversationRepository)(nil)

func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

func (r *GormConversationRepository) FindOrCreateDirect(ctx context.Context, creatorID, otherID uint) (*domain.Conversation, bool, error) {
	pairKey := domain.PairKey(creatorID, otherID)

	if conv, err := r.byPairKey(ctx, pairKey); err == nil {
		return conv, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	model := domain.ConversationModel{
		IsGroup:   false,
		PairKey:   &pairKey,
		CreatedBy: creatorID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		members := []domain.ParticipantModel{
			{ConversationID: model.ID, UserID: creatorID},
			{ConversationID: model.ID, UserID: otherID},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		// A concurrent creation won the pair_key index; use its row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conv, ferr := r.byPairKey(ctx, pairKey)
			if ferr != nil {
				return nil, false, ferr
			}
			return conv, false, nil
		}
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

func (r *GormConversationRepository) byPairKey(ctx context.Context, pairKey string) (*domain.Conversation, error) {
	var model domain.ConversationModel
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", pairKey).
		First(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormConversationRepository) CreateGroup(ctx context.Context, creatorID uint, memberIDs []uint, name string) (*domain.Conversation, error) {
	model := domain.ConversationModel{
		IsGroup:   true,
		Name:      name,
		CreatedBy: creatorID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		members := make([]domain.ParticipantModel, 0, len(memberIDs))
		for _, id := range memberIDs {
			members = append(members, domain.ParticipantModel{ConversationID: model.ID, UserID: id})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormConversationRepository) ConversationsOf(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	var models []domain.ConversationModel
	if err := r.db.WithContext(ctx).
		Model(&domain.ConversationModel{}).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	convs := make([]domain.Conversation, 0, len(models))
	for i := range models {
		convs = append(convs, *models[i].ToDomain())
	}
	return convs, nil
}

func (r *GormConversationRepository) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ParticipantModel{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormConversationRepository) Participants(ctx context.Context, conversationID uint) ([]ParticipantWithUser, error) {
	var memberModels []domain.ParticipantModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	if len(memberModels) == 0 {
		return nil, nil
	}

	userIDs := make([]uint, 0, len(memberModels))
	for i := range memberModels {
		userIDs = append(userIDs, memberModels[i].UserID)
	}
	var userModels []identitydomain.UserModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&userModels).Error; err != nil {
		return nil, err
	}
	usersByID := make(map[uint]identitydomain.User, len(userModels))
	for i := range userModels {
		usersByID[userModels[i].ID] = *userModels[i].ToDomain()
	}

	out := make([]ParticipantWithUser, 0, len(memberModels))
	for i := range memberModels {
		out = append(out, ParticipantWithUser{
			Participant: *memberModels[i].ToDomain(),
			User:        usersByID[memberModels[i].UserID],
		})
	}
	return out, nil
}

func (r *GormConversationRepository) LastMessage(ctx context.Context, conversationID uint) (*domain.Message, error) {
	var model domain.MessageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormConversationRepository) UnreadCount(ctx context.Context, conversationID, userID uint) (int64, error) {
	var member domain.ParticipantModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.MessageModel{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, userID)
	if member.LastReadAt != nil {
		tx = tx.Where("created_at > ?", *member.LastReadAt)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

func (r *GormConversationRepository) Messages(ctx context.Context, conversationID uint, page, limit int) ([]domain.Message, int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.MessageModel{}).
		Where("conversation_id = ?", conversationID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []domain.MessageModel
	if err := tx.Order("created_at ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	messages := make([]domain.Message, 0, len(models))
	for i := range models {
		messages = append(messages, *models[i].ToDomain())
	}
	return messages, total, nil
}

func (r *GormConversationRepository) MarkRead(ctx context.Context, conversationID, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.ParticipantModel{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", at).Error
}

func (r *GormConversationRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	model := domain.MessageToModel(message)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.ConversationModel{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", model.CreatedAt).Error; err != nil {
			return err
		}
		*message = *model.ToDomain()
		return nil
	})
}
