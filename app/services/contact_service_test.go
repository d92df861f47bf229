package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactInput(subject string) ContactInput {
	return ContactInput{FirstName: "Sam", LastName: "Lee", Email: "sam@x.io", Subject: subject, Message: "Where is my order?"}
}

func TestContactLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewContactService(f.contacts, f.catalog)

	_, err := svc.Create(ctx, contactInput("Complaint"))
	assert.ErrorIs(t, err, ErrInvalidSubject)

	c, err := svc.Create(ctx, contactInput("Order Status"))
	require.NoError(t, err)
	assert.Equal(t, "", c.Phone)

	_, err = svc.Update(ctx, c.ID, contactInput("Nope"))
	assert.ErrorIs(t, err, ErrInvalidSubject)
	_, err = svc.Update(ctx, 999, contactInput("Other"))
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, c.ID, contactInput("Refund Requested"))
	require.NoError(t, err)
	assert.Equal(t, "Refund Requested", updated.Subject)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refund Requested", got.Subject)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ErrNotFound)
}

func TestContactListPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewContactService(f.contacts, f.catalog)
	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, contactInput("Other"))
		require.NoError(t, err)
	}

	items, p, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalPages)
	require.Len(t, items, 2)
	assert.Equal(t, uint(2), items[0].ID)
	assert.Equal(t, uint(1), items[1].ID)

	assert.Equal(t, []string{"Order Status", "Refund Requested", "Job Application", "Other"}, svc.Subjects())
}
