package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

// Settings keys. The names match the layout already written by earlier
// installs, so they must not change.
const (
	SettingsKeyProfiles         = "databases"
	SettingsKeyLegacyCredential = "notionKey"
	SettingsKeyLegacyTarget     = "databaseId"
	SettingsKeyModelAPIKey      = "googleApiKey"
)

var ErrBlankModelAPIKey = errors.New("google ai api key is required")

type profileRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NotionKey  string `json:"notionKey"`
	DatabaseID string `json:"databaseId"`
}

// ProfileStore owns the destination profiles and the model API key.
// Writes are read-modify-write over the whole list; concurrent writers from
// other processes race and the last one wins.
type ProfileStore struct {
	settings ports.SettingsStore
	clock    ports.Clock
	logger   *slog.Logger
}

func NewProfileStore(settings ports.SettingsStore, clock ports.Clock, logger *slog.Logger) *ProfileStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{settings: settings, clock: clock, logger: logger}
}

func (s *ProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	values, err := s.settings.Get(ctx, SettingsKeyProfiles)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	return decodeProfiles(values[SettingsKeyProfiles])
}

func (s *ProfileStore) Get(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	for _, profile := range profiles {
		if profile.ID == id {
			return profile, nil
		}
	}

	return domain.Profile{}, domain.ErrProfileNotFound
}

// Upsert replaces the profile with the same id in place, or appends it.
// A profile without an id gets a fresh one.
func (s *ProfileStore) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	if profile.ID == "" {
		profile.ID = newProfileID(s.clock.Now())
	}

	profiles, err := s.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	updated := false
	for i := range profiles {
		if profiles[i].ID == profile.ID {
			profiles[i] = profile
			updated = true
			break
		}
	}
	if !updated {
		profiles = append(profiles, profile)
	}

	if err := s.writeProfiles(ctx, profiles); err != nil {
		return domain.Profile{}, err
	}

	return profile, nil
}

func (s *ProfileStore) Delete(ctx context.Context, id domain.ProfileID) error {
	profiles, err := s.List(ctx)
	if err != nil {
		return err
	}

	remaining := make([]domain.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.ID == id {
			continue
		}
		remaining = append(remaining, profile)
	}
	if len(remaining) == len(profiles) {
		return nil
	}

	return s.writeProfiles(ctx, remaining)
}

// Clear replaces the profile list with an empty one without reading it, so a
// corrupt list can be reset.
func (s *ProfileStore) Clear(ctx context.Context) error {
	return s.writeProfiles(ctx, nil)
}

// MigrateLegacyIfNeeded turns a complete legacy single-destination config
// into the first profile. It does nothing once any profile exists, and it
// never removes the legacy keys.
func (s *ProfileStore) MigrateLegacyIfNeeded(ctx context.Context) (bool, error) {
	values, err := s.settings.Get(ctx, SettingsKeyProfiles, SettingsKeyLegacyCredential, SettingsKeyLegacyTarget)
	if err != nil {
		return false, fmt.Errorf("read settings for migration: %w", err)
	}

	profiles, err := decodeProfiles(values[SettingsKeyProfiles])
	if err != nil {
		return false, err
	}
	if len(profiles) > 0 {
		return false, nil
	}

	legacy := domain.LegacyProfile{
		Credential:         strings.TrimSpace(values[SettingsKeyLegacyCredential]),
		TargetCollectionID: strings.TrimSpace(values[SettingsKeyLegacyTarget]),
	}
	if !legacy.Complete() {
		return false, nil
	}

	migrated := domain.Profile{
		ID:                 newProfileID(s.clock.Now()),
		Name:               domain.DefaultMigratedProfileName,
		Credential:         legacy.Credential,
		TargetCollectionID: legacy.TargetCollectionID,
	}
	if err := s.writeProfiles(ctx, []domain.Profile{migrated}); err != nil {
		return false, fmt.Errorf("migrate legacy profile: %w", err)
	}

	s.logger.Info("migrated legacy destination into profile", "profile_id", string(migrated.ID))

	return true, nil
}

func (s *ProfileStore) ModelAPIKey(ctx context.Context) (string, error) {
	values, err := s.settings.Get(ctx, SettingsKeyModelAPIKey)
	if err != nil {
		return "", fmt.Errorf("read model api key: %w", err)
	}

	return strings.TrimSpace(values[SettingsKeyModelAPIKey]), nil
}

func (s *ProfileStore) SetModelAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrBlankModelAPIKey
	}

	if err := s.settings.Set(ctx, map[string]string{SettingsKeyModelAPIKey: key}); err != nil {
		return fmt.Errorf("save model api key: %w", err)
	}

	return nil
}

func (s *ProfileStore) writeProfiles(ctx context.Context, profiles []domain.Profile) error {
	records := make([]profileRecord, 0, len(profiles))
	for _, profile := range profiles {
		records = append(records, profileRecord{
			ID:         string(profile.ID),
			Name:       profile.Name,
			NotionKey:  profile.Credential,
			DatabaseID: profile.TargetCollectionID,
		})
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	if err := s.settings.Set(ctx, map[string]string{SettingsKeyProfiles: string(encoded)}); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	return nil
}

func decodeProfiles(raw string) ([]domain.Profile, error) {
	if strings.TrimSpace(raw) == "" {
		return []domain.Profile{}, nil
	}

	var records []profileRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(records))
	for _, record := range records {
		profiles = append(profiles, domain.Profile{
			ID:                 domain.ProfileID(record.ID),
			Name:               record.Name,
			Credential:         record.NotionKey,
			TargetCollectionID: record.DatabaseID,
		})
	}

	return profiles, nil
}
