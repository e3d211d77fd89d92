package usecases

import (
	"context"
	"testing"

	"houses-api/apperr"
	"houses-api/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBook_RequiresExistingHouse(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookUC.AddBook(context.Background(), publisher, "missing", BookInput{
		Title: str("Dune"), Description: str("d"), Author: str("Herbert"), Rating: num(9),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "No house with the id of missing", err.Error())
}

func TestAddBook_OnlyHouseOwner(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")

	_, err := f.bookUC.AddBook(context.Background(), stranger, h.ID, BookInput{
		Title: str("Dune"), Description: str("d"), Author: str("Herbert"), Rating: num(9),
	})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	books, err := f.bookUC.ListBooksByHouse(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAddBook_ValidatesRating(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")

	_, err := f.bookUC.AddBook(context.Background(), publisher, h.ID, BookInput{
		Title: str("Dune"), Description: str("d"), Author: str("Herbert"), Rating: num(11),
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGetBook_IncludesHouseSummary(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")
	b := f.addBook(t, publisher, h.ID, "Dune")

	got, err := f.bookUC.GetBook(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.House)
	assert.Equal(t, "Oak Hall", got.House.Name)
	assert.Equal(t, h.ID, got.HouseID)
	assert.Equal(t, publisher.ID, got.UserID)
	assert.Contains(t, f.events.types(), entities.EventBookCreated)
}

func TestUpdateBook_OwnerAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHouse(t, publisher, "Oak Hall")
	b := f.addBook(t, publisher, h.ID, "Dune")

	_, err := f.bookUC.UpdateBook(ctx, stranger, b.ID, BookInput{Title: str("Stolen")})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := f.bookUC.UpdateBook(ctx, admin, b.ID, BookInput{Rating: num(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Dune", updated.Title)
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHouse(t, publisher, "Oak Hall")
	b := f.addBook(t, publisher, h.ID, "Dune")

	assert.True(t, apperr.Is(f.bookUC.DeleteBook(ctx, stranger, b.ID), apperr.KindForbidden))
	require.NoError(t, f.bookUC.DeleteBook(ctx, publisher, b.ID))

	err := f.bookUC.DeleteBook(ctx, publisher, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
