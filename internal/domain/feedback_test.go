package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"feedback-backend/internal/domain"
)

func TestFeedbackStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.FeedbackStatus
		to      domain.FeedbackStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusInProgress, true},
		{domain.StatusPending, domain.StatusResolved, true},
		{domain.StatusInProgress, domain.StatusResolved, true},
		{domain.StatusInProgress, domain.StatusPending, false},
		{domain.StatusResolved, domain.StatusPending, false},
		{domain.StatusResolved, domain.StatusInProgress, false},
		{domain.StatusPending, domain.StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRoleCanRespond(t *testing.T) {
	assert.True(t, domain.RoleAdmin.CanRespond())
	assert.True(t, domain.RoleStaff.CanRespond())
	assert.False(t, domain.RolePatient.CanRespond())
	assert.False(t, domain.Role("Ghost").CanRespond())
}

func TestNotificationPreferenceChannels(t *testing.T) {
	assert.True(t, domain.PrefBoth.WantsSMS())
	assert.True(t, domain.PrefBoth.WantsEmail())
	assert.True(t, domain.PrefSMS.WantsSMS())
	assert.False(t, domain.PrefSMS.WantsEmail())
	assert.False(t, domain.PrefNone.WantsSMS())
	assert.False(t, domain.PrefNone.WantsEmail())
}
