package usecases

import (
	"context"
	"sync"
	"testing"

	"houses-api/db"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/repositories"

	"github.com/stretchr/testify/require"
)

var (
	publisher = Actor{ID: "pub-1", Role: entities.RolePublisher}
	stranger  = Actor{ID: "pub-2", Role: entities.RolePublisher}
	reader    = Actor{ID: "user-1", Role: entities.RoleUser}
	reader2   = Actor{ID: "user-2", Role: entities.RoleUser}
	admin     = Actor{ID: "admin-1", Role: entities.RoleAdmin}
)

type recorder struct {
	mu     sync.Mutex
	events []entities.HouseEvent
}

func (r *recorder) PublishHouseEvent(ev entities.HouseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db      db.Database
	houses  repositories.HouseRepository
	books   repositories.BookRepository
	reviews repositories.ReviewRepository
	users   repositories.UserRepository
	events  *recorder

	lifecycle *Lifecycle
	houseUC   *HouseUseCase
	bookUC    *BookUseCase
	reviewUC  *ReviewUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.NewMemory()
	require.NoError(t, err)

	log := logger.Nop()
	f := &fixture{
		db:      database,
		houses:  repositories.NewHousePgRepository(database),
		books:   repositories.NewBookPgRepository(database),
		reviews: repositories.NewReviewPgRepository(database),
		users:   repositories.NewUserPgRepository(database),
		events:  &recorder{},
	}
	f.lifecycle = NewLifecycle(f.houses, f.books, f.reviews, log)
	f.houseUC = NewHouseUseCase(database, f.houses, f.lifecycle, f.events, log)
	f.bookUC = NewBookUseCase(database, f.books, f.houses, f.lifecycle, f.events, log)
	f.reviewUC = NewReviewUseCase(database, f.reviews, f.houses, f.lifecycle, f.events, log)
	return f
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func (f *fixture) createHouse(t *testing.T, actor Actor, name string) *entities.House {
	t.Helper()
	h, err := f.houseUC.CreateHouse(context.Background(), actor, HouseInput{
		Name:        str(name),
		Description: str("A quiet place to read"),
		Address:     str("1 Main St, Springfield"),
	})
	require.NoError(t, err)
	return h
}

func (f *fixture) addBook(t *testing.T, actor Actor, houseID, title string) *entities.Book {
	t.Helper()
	b, err := f.bookUC.AddBook(context.Background(), actor, houseID, BookInput{
		Title:       str(title),
		Description: str("d"),
		Author:      str("Anon"),
		Rating:      num(7),
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) addReview(t *testing.T, actor Actor, houseID string, rating int) *entities.Review {
	t.Helper()
	r, err := f.reviewUC.AddReview(context.Background(), actor, houseID, ReviewInput{
		Title:  str("Review"),
		Text:   str("Lovely"),
		Rating: num(rating),
	})
	require.NoError(t, err)
	return r
}
