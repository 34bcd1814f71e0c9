package service

import (
	"errors"

	"linkpulse/internal/models"
	"linkpulse/internal/repository"

	"github.com/google/uuid"
	"github.com/teris-io/shortid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrGenerateShortCode = errors.New("error generating short code")
	ErrCreateLink        = errors.New("error creating link")
	ErrLinkNotFound      = errors.New("link not found")
	ErrLinkLimitReached  = errors.New("link limit reached")
)

// FreeLinkLimit — потолок персональных ссылок на бесплатном тарифе.
const FreeLinkLimit = 50

type LinkService struct {
	repo  *repository.LinkRepository
	click *repository.ClickRepository
	users *repository.UserRepository
	teams *repository.TeamRepository
	Log   *zap.Logger
}

func NewLinkService(repo *repository.LinkRepository, click *repository.ClickRepository, users *repository.UserRepository, teams *repository.TeamRepository, log *zap.Logger) *LinkService {
	return &LinkService{
		repo:  repo,
		click: click,
		users: users,
		teams: teams,
		Log:   log,
	}
}

type CreateLinkInput struct {
	DestinationURL string
	UTM            UTMFields
	Title          *string
	TeamID         *uuid.UUID
	WantShortCode  bool
}

func (s *LinkService) CreateLink(userID uuid.UUID, in CreateLinkInput) (*models.Link, error) {
	// Целевой URL валидируется здесь, чтобы редирект дальше не падал.
	if _, err := BuildTaggedURL(in.DestinationURL, in.UTM); err != nil {
		return nil, err
	}

	link := &models.Link{
		DestinationURL: in.DestinationURL,
		UTMSource:      in.UTM.Source,
		UTMMedium:      in.UTM.Medium,
		UTMCampaign:    in.UTM.Campaign,
		UTMTerm:        in.UTM.Term,
		UTMContent:     in.UTM.Content,
		Title:          in.Title,
	}

	if in.TeamID != nil {
		ok, err := s.teams.IsMember(*in.TeamID, userID)
		if err != nil {
			s.Log.Error("Failed to check team membership", zap.Error(err))
			return nil, ErrCreateLink
		}
		if !ok {
			return nil, ErrForbidden
		}
		link.TeamID = in.TeamID
	} else {
		user, err := s.users.GetByID(userID)
		if err != nil {
			s.Log.Error("Failed to load user for limit check", zap.Error(err))
			return nil, ErrCreateLink
		}
		if user.Plan == "free" {
			count, err := s.repo.CountPersonal(userID)
			if err != nil {
				s.Log.Error("Failed to count personal links", zap.Error(err))
				return nil, ErrCreateLink
			}
			if count >= FreeLinkLimit {
				return nil, ErrLinkLimitReached
			}
		}
		link.UserID = &userID
	}

	if in.WantShortCode {
		code, err := shortid.Generate()
		if err != nil {
			s.Log.Error("Failed to generate short code", zap.Error(err))
			return nil, ErrGenerateShortCode
		}
		link.ShortCode = &code
	}

	// Уникальность short_code держит только индекс БД: коллизия на вставке
	// приходит сюда как обычная ошибка создания, без повторных попыток.
	if err := s.repo.Create(link); err != nil {
		s.Log.Error("Failed to create link", zap.Error(err))
		return nil, ErrCreateLink
	}

	return link, nil
}

func (s *LinkService) GetByShortCode(code string) (*models.Link, error) {
	var link models.Link
	if err := s.repo.GetByShortCode(&link, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *LinkService) ListForUser(userID uuid.UUID, teamID *uuid.UUID) ([]*models.Link, error) {
	ids, err := s.accessibleLinkIDs(userID, teamID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByIDs(ids)
}

func (s *LinkService) accessibleLinkIDs(userID uuid.UUID, teamID *uuid.UUID) ([]uuid.UUID, error) {
	if teamID == nil {
		return s.repo.PersonalIDs(userID)
	}
	ok, err := s.teams.IsMember(*teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.repo.TeamIDs(*teamID)
}

// DeleteLink удаляет ссылку вместе с её кликами.
func (s *LinkService) DeleteLink(userID, linkID uuid.UUID) error {
	link, err := s.repo.GetByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return err
	}
	if err := s.canAccessLink(userID, link); err != nil {
		return err
	}
	if _, err := s.click.DeleteByLinkID(link.ID); err != nil {
		s.Log.Error("Failed to delete clicks of link", zap.String("linkID", link.ID.String()), zap.Error(err))
		return err
	}
	return s.repo.Delete(link.ID)
}

func (s *LinkService) canAccessLink(userID uuid.UUID, link *models.Link) error {
	if link.UserID != nil && *link.UserID == userID {
		return nil
	}
	if link.TeamID != nil {
		ok, err := s.teams.IsMember(*link.TeamID, userID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrForbidden
}
