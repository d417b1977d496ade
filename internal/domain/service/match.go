package service

import (
	"context"
	"errors"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"gorm.io/gorm"
)

const matchCacheTTL = 5 * time.Minute

type MatchStorage interface {
	Create(ctx context.Context, match *entity.Match) (*entity.Match, error)
	Get(ctx context.Context, id string) (*entity.Match, error)
	Update(ctx context.Context, match *entity.Match) (*entity.Match, error)
	Delete(ctx context.Context, id string) error
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Match, error)
}

type matchCache interface {
	Get(ctx context.Context, matchID string) (*entity.Match, error)
	Set(ctx context.Context, match *entity.Match, expiration time.Duration)
	Clear(ctx context.Context, matchID string)
}

type MatchService struct {
	matchStorage MatchStorage
	matchCache   matchCache
	publisher    *Publisher
}

func NewMatchService(matchStorage MatchStorage, matchCache matchCache, publisher *Publisher) *MatchService {
	return &MatchService{
		matchStorage: matchStorage,
		matchCache:   matchCache,
		publisher:    publisher,
	}
}

func (s *MatchService) Create(ctx context.Context, match entity.Match) (*entity.Match, error) {
	match.Status = entity.MatchStatusOpen
	created, err := s.matchStorage.Create(ctx, &match)
	if err != nil {
		return nil, err
	}

	s.publisher.MatchCreated(ctx, created)
	return created, nil
}

// Get reads through the cache with a fixed TTL.
func (s *MatchService) Get(ctx context.Context, matchID string) (*entity.Match, error) {
	if cached, _ := s.matchCache.Get(ctx, matchID); cached != nil {
		return cached, nil
	}

	match, err := s.matchStorage.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}

	s.matchCache.Set(ctx, match, matchCacheTTL)
	return match, nil
}

func (s *MatchService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Match, error) {
	return s.matchStorage.GetWithPagination(ctx, offset, limit, order)
}

// Update applies the creator's edits and emits MATCH_UPDATED.
func (s *MatchService) Update(ctx context.Context, callerID string, match *entity.Match) (*entity.Match, error) {
	existing, err := s.matchStorage.Get(ctx, match.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}
	if existing.CreatorID != callerID {
		return nil, errorz.ErrForbidden
	}

	// The storage does a full-row save; fields the caller cannot edit must
	// come from the stored row or the save would blank them.
	match.CreatorID = existing.CreatorID
	match.Status = existing.Status
	match.CreatedAt = existing.CreatedAt
	updated, err := s.matchStorage.Update(ctx, match)
	if err != nil {
		return nil, err
	}
	s.matchCache.Clear(ctx, match.ID)

	s.publisher.MatchUpdated(ctx, updated)
	return updated, nil
}

// UpdateStatus moves the match through its lifecycle and emits the transition.
func (s *MatchService) UpdateStatus(ctx context.Context, callerID, matchID string, status entity.MatchStatus) (*entity.Match, error) {
	match, err := s.matchStorage.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}
	if match.CreatorID != callerID {
		return nil, errorz.ErrForbidden
	}

	previous := match.Status
	match.Status = status
	updated, err := s.matchStorage.Update(ctx, match)
	if err != nil {
		return nil, err
	}
	s.matchCache.Clear(ctx, matchID)

	s.publisher.MatchStatusChanged(ctx, updated, previous)
	return updated, nil
}

func (s *MatchService) Delete(ctx context.Context, callerID, matchID string) error {
	match, err := s.matchStorage.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return err
	}
	if match.CreatorID != callerID {
		return errorz.ErrForbidden
	}

	if err = s.matchStorage.Delete(ctx, matchID); err != nil {
		return err
	}
	s.matchCache.Clear(ctx, matchID)

	s.publisher.MatchDeleted(ctx, matchID, match.CreatorID)
	return nil
}

// RequestJoin emits the join request towards the match creator, who gets a
// push and an in-app notification out of it downstream.
func (s *MatchService) RequestJoin(ctx context.Context, matchID, requesterID string) error {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if match.Status != entity.MatchStatusOpen {
		return errorz.ErrInvalidInput
	}

	s.publisher.JoinRequestReceived(ctx, matchID, match.CreatorID, requesterID)
	s.publisher.PushRequested(ctx, match.CreatorID, entity.CategoryJoinRequest,
		"New join request",
		"Someone wants to join "+match.Title,
		map[string]string{"matchId": matchID, "requesterId": requesterID},
	)
	return nil
}

// ResolveJoin accepts or rejects a pending request; only the creator may call it.
func (s *MatchService) ResolveJoin(ctx context.Context, callerID, matchID, requesterID string, accept bool) error {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if match.CreatorID != callerID {
		return errorz.ErrForbidden
	}

	if accept {
		s.publisher.JoinRequestAccepted(ctx, matchID, requesterID)
		s.publisher.PlayerJoined(ctx, matchID, requesterID)
		s.publisher.PushRequested(ctx, requesterID, entity.CategoryMatchUpdate,
			"Request accepted",
			"You are in: "+match.Title,
			map[string]string{"matchId": matchID},
		)
	} else {
		s.publisher.JoinRequestRejected(ctx, matchID, requesterID)
		s.publisher.PushRequested(ctx, requesterID, entity.CategoryMatchUpdate,
			"Request declined",
			"Your request for "+match.Title+" was declined",
			map[string]string{"matchId": matchID},
		)
	}
	return nil
}

// Save bookmarks a match for the user; Unsave removes the bookmark.
func (s *MatchService) Save(ctx context.Context, matchID, userID string) error {
	if _, err := s.Get(ctx, matchID); err != nil {
		return err
	}
	s.publisher.MatchSaved(ctx, matchID, userID)
	return nil
}

func (s *MatchService) Unsave(ctx context.Context, matchID, userID string) error {
	if _, err := s.Get(ctx, matchID); err != nil {
		return err
	}
	s.publisher.MatchUnsaved(ctx, matchID, userID)
	return nil
}
