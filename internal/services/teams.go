package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"teamkasse/internal/domain"
	"teamkasse/internal/events"
	"teamkasse/internal/repos"
)

var (
	ErrSlugTaken    = errors.New("Team mit diesem Slug existiert bereits")
	ErrTeamNotFound = errors.New("Team nicht gefunden")
	ErrTeamInvalid  = errors.New("Name und Slug dürfen nicht leer sein")
)

type TeamService struct {
	Teams *repos.TeamRepo
	Bus   *events.Bus
}

func NewTeamService(teams *repos.TeamRepo, bus *events.Bus) *TeamService {
	return &TeamService{Teams: teams, Bus: bus}
}

func (s *TeamService) List() ([]domain.Team, error) { return s.Teams.ListVisible() }

func (s *TeamService) ListForAdmin() ([]domain.Team, error) { return s.Teams.ListAll() }

// GetBySlug returns nil (no error) for unknown, hidden or deleted slugs.
func (s *TeamService) GetBySlug(slug string) (*domain.Team, error) {
	t, err := s.Teams.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.Visible() {
		return nil, nil
	}
	return t, nil
}

// Create inserts a new team. Slugs are unique among non-deleted teams only,
// so a deleted team's slug can be taken over.
func (s *TeamService) Create(name, slug string) (string, error) {
	if name == "" || slug == "" {
		return "", ErrTeamInvalid
	}
	taken, err := s.Teams.SlugTaken(slug, "")
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugTaken
	}
	t := domain.Team{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		Active:    true,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.Teams.Insert(t); err != nil {
		return "", err
	}
	s.Bus.Publish(events.TopicTeams)
	return t.ID, nil
}

// Update patches the provided fields. A changed slug is re-checked against
// non-deleted teams excluding the team itself; a no-op patch is skipped.
func (s *TeamService) Update(id string, patch repos.TeamPatch) error {
	t, err := s.Teams.Get(id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTeamNotFound
	}
	if patch.Slug != nil && *patch.Slug != t.Slug {
		taken, err := s.Teams.SlugTaken(*patch.Slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
	}
	if patch.Empty() {
		return nil
	}
	if err := s.Teams.Update(id, patch); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicTeams)
	return nil
}

func (s *TeamService) Remove(id string) error {
	t, err := s.Teams.Get(id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTeamNotFound
	}
	if err := s.Teams.SoftDelete(id, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicTeams)
	return nil
}
