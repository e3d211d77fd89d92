package usecases

import (
	"context"
	"testing"

	"houses-api/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeMutation(t *testing.T) {
	f := newFixture(t)
	res := Owned{Kind: "book", ID: "b1", OwnerID: publisher.ID}

	assert.NoError(t, f.lifecycle.AuthorizeMutation(publisher, "update", res))
	assert.NoError(t, f.lifecycle.AuthorizeMutation(admin, "update", res))

	err := f.lifecycle.AuthorizeMutation(stranger, "update", res)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, "User pub-2 is not authorized to update book b1", err.Error())

	err = f.lifecycle.AuthorizeMutation(Actor{}, "delete", Owned{Kind: "book", ID: "b2"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestEnforceSingleHouseOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.lifecycle.EnforceSingleHouseOwnership(ctx, nil, publisher))
	f.createHouse(t, publisher, "Oak Hall")

	err := f.lifecycle.EnforceSingleHouseOwnership(ctx, nil, publisher)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.NoError(t, f.lifecycle.EnforceSingleHouseOwnership(ctx, nil, stranger))

	f.createHouse(t, admin, "Admin House")
	assert.NoError(t, f.lifecycle.EnforceSingleHouseOwnership(ctx, nil, admin))
}

func TestRecomputeHouseAverageRating_NoReviews(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")

	avg, err := f.lifecycle.RecomputeHouseAverageRating(context.Background(), nil, h.ID)
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestCascadeDeleteHouse_LeavesOtherHouses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oak := f.createHouse(t, publisher, "Oak Hall")
	pine := f.createHouse(t, stranger, "Pine Lodge")
	f.addBook(t, publisher, oak.ID, "Dune")
	f.addBook(t, stranger, pine.ID, "Emma")

	require.NoError(t, f.lifecycle.CascadeDeleteHouse(ctx, nil, oak.ID))

	books, err := f.bookUC.ListBooksByHouse(ctx, oak.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
	books, err = f.bookUC.ListBooksByHouse(ctx, pine.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "oak-hall", Slugify("Oak Hall"))
	assert.Equal(t, Slugify("Oak Hall"), Slugify("Oak Hall"))
	assert.Equal(t, "cafe-books", Slugify("Café Books"))
}
