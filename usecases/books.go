package usecases

import (
	"context"
	"errors"
	"strings"

	"houses-api/apperr"
	"houses-api/db"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/query"
	"houses-api/repositories"

	"gorm.io/gorm"
)

type BookInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	Rating      *int    `json:"rating"`
}

func (in BookInput) apply(b *entities.Book) {
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Author != nil {
		b.Author = strings.TrimSpace(*in.Author)
	}
	if in.Rating != nil {
		b.Rating = *in.Rating
	}
}

type BookUseCase struct {
	db        db.Database
	books     repositories.BookRepository
	houses    repositories.HouseRepository
	lifecycle *Lifecycle
	events    EventPublisher
	log       *logger.Logger
}

func NewBookUseCase(database db.Database, books repositories.BookRepository, houses repositories.HouseRepository, lifecycle *Lifecycle, events EventPublisher, log *logger.Logger) *BookUseCase {
	return &BookUseCase{
		db:        database,
		books:     books,
		houses:    houses,
		lifecycle: lifecycle,
		events:    publisherOrNop(events),
		log:       log.With("component", "books"),
	}
}

func bookNotFound(id string) func() error {
	return func() error { return apperr.NotFound("No book with the id of %s", id) }
}

// AddBook creates a book under a house; only the house owner or an admin may add one.
func (uc *BookUseCase) AddBook(ctx context.Context, actor Actor, houseID string, in BookInput) (*entities.Book, error) {
	book := &entities.Book{HouseID: houseID, UserID: actor.ID}
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		house, err := uc.houses.GetByID(ctx, tx, houseID)
		if err != nil {
			return translate(err, func() error { return apperr.NotFound("No house with the id of %s", houseID) }, nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "add a book to", Owned{Kind: "house", ID: house.ID, OwnerID: house.UserID}); err != nil {
			return err
		}
		in.apply(book)
		if err := validateEntity(book); err != nil {
			return err
		}
		return uc.books.Create(ctx, tx, book)
	})
	if err != nil {
		return nil, translate(err, nil, nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventBookCreated, houseID, book.ID, nil))
	return book, nil
}

// GetBook retrieves a book with a summary of its house.
func (uc *BookUseCase) GetBook(ctx context.Context, id string) (*entities.BookDetail, error) {
	book, err := uc.books.GetByID(ctx, nil, id)
	if err != nil {
		return nil, translate(err, bookNotFound(id), nil)
	}
	detail := &entities.BookDetail{Book: *book}
	house, err := uc.houses.GetByID(ctx, nil, book.HouseID)
	switch {
	case err == nil:
		detail.House = &entities.HouseSummary{ID: house.ID, Name: house.Name, Description: house.Description}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, apperr.Unexpected(err)
	}
	return detail, nil
}

// ListBooksByHouse returns every book of a house.
func (uc *BookUseCase) ListBooksByHouse(ctx context.Context, houseID string) ([]entities.Book, error) {
	books, err := uc.books.ListByHouse(ctx, nil, houseID)
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	return books, nil
}

func (uc *BookUseCase) ListBooks(ctx context.Context, params *query.Params) ([]entities.Book, int64, error) {
	books, total, err := uc.books.List(ctx, nil, params)
	if err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return books, total, nil
}

// UpdateBook applies in to a book owned by the actor.
func (uc *BookUseCase) UpdateBook(ctx context.Context, actor Actor, id string, in BookInput) (*entities.Book, error) {
	var book *entities.Book
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		book, err = uc.books.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, bookNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "update", Owned{Kind: "book", ID: book.ID, OwnerID: book.UserID}); err != nil {
			return err
		}
		in.apply(book)
		if err := validateEntity(book); err != nil {
			return err
		}
		return uc.books.Update(ctx, tx, book)
	})
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	return book, nil
}

// DeleteBook removes a book owned by the actor.
func (uc *BookUseCase) DeleteBook(ctx context.Context, actor Actor, id string) error {
	var houseID string
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		book, err := uc.books.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, bookNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "delete", Owned{Kind: "book", ID: book.ID, OwnerID: book.UserID}); err != nil {
			return err
		}
		houseID = book.HouseID
		return uc.books.Delete(ctx, tx, book.ID)
	})
	if err != nil {
		return translate(err, nil, nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventBookDeleted, houseID, id, nil))
	return nil
}
