package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func TestNotificationListAndUnreadCount(t *testing.T) {
	db := testDB(t)
	svc := NewNotificationService(db)
	person := seedPerson(t, db, "p@x.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Create(db, person.ID, models.NotifScoutReceived, map[string]any{"n": i}))
	}

	resp, err := svc.List(person.ID, dtos.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 3)
	assert.EqualValues(t, 3, resp.UnreadCount)
}

func TestNotificationMarkRead(t *testing.T) {
	db := testDB(t)
	svc := NewNotificationService(db)
	person := seedPerson(t, db, "p@x.com")
	other := seedPerson(t, db, "o@x.com")

	require.NoError(t, svc.Create(db, person.ID, models.NotifScoutReceived, nil))
	var notif models.Notification
	require.NoError(t, db.First(&notif, "user_id = ?", person.ID).Error)

	// Not yours.
	err := svc.MarkRead(other.ID, notif.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	require.NoError(t, svc.MarkRead(person.ID, notif.ID))
	// Marking twice is fine.
	require.NoError(t, svc.MarkRead(person.ID, notif.ID))

	resp, err := svc.List(person.ID, dtos.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Zero(t, resp.UnreadCount)
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := testDB(t)
	svc := NewNotificationService(db)
	person := seedPerson(t, db, "p@x.com")

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.Create(db, person.ID, models.NotifStatusChanged, nil))
	}

	updated, err := svc.MarkAllRead(person.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, updated)

	updated, err = svc.MarkAllRead(person.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
