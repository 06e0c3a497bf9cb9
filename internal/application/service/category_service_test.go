package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentworks/scentworks-api/pkg/apperror"
)

func TestCreateCategory_SlugUnique(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)
	userID := uuid.New()

	created, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{
		UserID: userID,
		Name:   "Scent Oils",
	})
	require.NoError(t, err)
	assert.Equal(t, "scent-oils", created.Slug)

	// Same name modulo case and spacing collides on the slug
	_, err = svc.CreateCategory(context.Background(), &CreateCategoryInput{
		UserID: userID,
		Name:   "  scent oils ",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateCategory_RenameKeepsIdentity(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{
		UserID: uuid.New(),
		Name:   "Packaging",
	})
	require.NoError(t, err)

	renamed, err := svc.UpdateCategory(context.Background(), created.ID, "Packaging Supplies")
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "packaging-supplies", renamed.Slug)
}
