package service

import (
	"testing"

	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestCanEditEvent(t *testing.T) {
	owner := &models.Principal{UserID: 1, Email: "owner@example.com"}
	stranger := &models.Principal{UserID: 2, Email: "stranger@example.com"}
	premium := &models.Principal{UserID: 3, Email: "premium@example.com", Premium: true}

	ownedEvent := &models.Event{ID: 10, CreatedBy: uintPtr(1), Source: models.SourceUser}
	legacyUserEvent := &models.Event{ID: 11, CreatedBy: nil, Source: models.SourceUser}
	migratedEvent := &models.Event{ID: 12, CreatedBy: nil, Source: models.SourceMigrated}

	tests := []struct {
		name      string
		principal *models.Principal
		event     *models.Event
		want      bool
	}{
		{"anonymous never edits", nil, ownedEvent, false},
		{"anonymous never edits legacy", nil, legacyUserEvent, false},
		{"premium edits any event", premium, ownedEvent, true},
		{"premium edits migrated event", premium, migratedEvent, true},
		{"owner edits own event", owner, ownedEvent, true},
		{"stranger cannot edit others event", stranger, ownedEvent, false},
		// legacy carve-out: sahipsiz user-sourced kayıtlar herhangi bir
		// authenticated kullanıcı tarafından düzenlenebilir
		{"any authenticated user edits ownerless user-sourced event", stranger, legacyUserEvent, true},
		{"ownerless migrated event is not editable by free users", stranger, migratedEvent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditEvent(tt.principal, tt.event))
		})
	}
}

func TestCanEditEvent_Deterministic(t *testing.T) {
	p := &models.Principal{UserID: 5}
	e := &models.Event{ID: 1, CreatedBy: uintPtr(5), Source: models.SourceUser}

	first := CanEditEvent(p, e)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CanEditEvent(p, e))
	}
}
