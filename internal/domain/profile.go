package domain

import (
	"fmt"
	"strings"
)

const DefaultMigratedProfileName = "Default Database"

type ProfileID string

// Profile pairs a destination credential with a target database.
type Profile struct {
	ID                 ProfileID
	Name               string
	Credential         string
	TargetCollectionID string
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Credential) == "" {
		return fmt.Errorf("%w: credential is required", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.TargetCollectionID) == "" {
		return fmt.Errorf("%w: target database id is required", ErrInvalidProfile)
	}

	return nil
}

// Normalize trims the user-entered fields.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}

	p.ID = ProfileID(strings.TrimSpace(string(p.ID)))
	p.Name = strings.TrimSpace(p.Name)
	p.Credential = strings.TrimSpace(p.Credential)
	p.TargetCollectionID = strings.TrimSpace(p.TargetCollectionID)
}

// LegacyProfile is the single-destination layout that predates profiles.
type LegacyProfile struct {
	Credential         string
	TargetCollectionID string
}

func (l LegacyProfile) Complete() bool {
	return l.Credential != "" && l.TargetCollectionID != ""
}
