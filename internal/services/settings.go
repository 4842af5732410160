package services

import (
	"fmt"
	"strings"

	"teamkasse/internal/domain"
	"teamkasse/internal/events"
	"teamkasse/internal/repos"
)

const (
	keyActiveTemplate = "activeTemplate"
	keyTemplateNameA  = "templateNameA"
	keyTemplateNameB  = "templateNameB"

	defaultTemplateNameA = "Vorlage A"
	defaultTemplateNameB = "Vorlage B"
)

// SettingsService layers the typed template accessors over the generic
// key/value store.
type SettingsService struct {
	Settings *repos.SettingsRepo
	Bus      *events.Bus
}

func NewSettingsService(settings *repos.SettingsRepo, bus *events.Bus) *SettingsService {
	return &SettingsService{Settings: settings, Bus: bus}
}

// Get returns the raw value for key, "" when unset.
func (s *SettingsService) Get(key string) (string, error) {
	v, _, err := s.Settings.Get(key)
	return v, err
}

func (s *SettingsService) Set(key, value string) error {
	if err := s.Settings.Set(key, value); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicSettings)
	return nil
}

// ActiveTemplate returns "A" or "B", defaulting to "A" when never set.
func (s *SettingsService) ActiveTemplate() (string, error) {
	v, found, err := s.Settings.Get(keyActiveTemplate)
	if err != nil {
		return "", err
	}
	if !found || (v != domain.TemplateA && v != domain.TemplateB) {
		return domain.TemplateA, nil
	}
	return v, nil
}

func (s *SettingsService) SetActiveTemplate(template string) error {
	if template != domain.TemplateA && template != domain.TemplateB {
		return fmt.Errorf("ungültige Vorlage: %q", template)
	}
	if err := s.Settings.Set(keyActiveTemplate, template); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicSettings)
	// product prices depend on the active template
	s.Bus.Publish(events.TopicProducts)
	return nil
}

type TemplateNames struct {
	NameA string `json:"nameA"`
	NameB string `json:"nameB"`
}

func (s *SettingsService) TemplateNames() (TemplateNames, error) {
	nameA, foundA, err := s.Settings.Get(keyTemplateNameA)
	if err != nil {
		return TemplateNames{}, err
	}
	nameB, foundB, err := s.Settings.Get(keyTemplateNameB)
	if err != nil {
		return TemplateNames{}, err
	}
	if !foundA || nameA == "" {
		nameA = defaultTemplateNameA
	}
	if !foundB || nameB == "" {
		nameB = defaultTemplateNameB
	}
	return TemplateNames{NameA: nameA, NameB: nameB}, nil
}

// SetTemplateNames trims both labels; blank input falls back to the
// fixed default names.
func (s *SettingsService) SetTemplateNames(nameA, nameB string) error {
	nameA = strings.TrimSpace(nameA)
	if nameA == "" {
		nameA = defaultTemplateNameA
	}
	nameB = strings.TrimSpace(nameB)
	if nameB == "" {
		nameB = defaultTemplateNameB
	}
	if err := s.Settings.Set(keyTemplateNameA, nameA); err != nil {
		return err
	}
	if err := s.Settings.Set(keyTemplateNameB, nameB); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicSettings)
	return nil
}
