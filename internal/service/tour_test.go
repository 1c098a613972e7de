package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/repo"
	"github.com/travelworld/tour-admin/internal/service"
	"github.com/travelworld/tour-admin/internal/storage"
)

// mockTourRepo is a hand-written test double for repo.TourRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockTourRepo struct {
	create  func(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	list    func(ctx context.Context) ([]domain.Tour, error)
	update  func(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	delete  func(ctx context.Context, id uuid.UUID) (domain.Tour, error)
}

func (m *mockTourRepo) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	return m.create(ctx, tour)
}
func (m *mockTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourRepo) List(ctx context.Context) ([]domain.Tour, error) {
	return m.list(ctx)
}
func (m *mockTourRepo) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	return m.update(ctx, tour)
}
func (m *mockTourRepo) Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	return m.delete(ctx, id)
}

// compile-time check: mockTourRepo must satisfy repo.TourRepo.
var _ repo.TourRepo = (*mockTourRepo)(nil)

// mockImageStore counts uploads and returns a fixed result or error.
type mockImageStore struct {
	uploads int
	result  domain.UploadResult
	err     error
}

func (m *mockImageStore) Upload(_ context.Context, _ storage.ImageFile) (domain.UploadResult, error) {
	m.uploads++
	if m.err != nil {
		return domain.UploadResult{}, m.err
	}
	return m.result, nil
}

var _ storage.ImageStore = (*mockImageStore)(nil)

// ---- helpers ---------------------------------------------------------------

func validTour() domain.Tour {
	return domain.Tour{
		Title:       "Paris",
		Description: "City",
		Price:       500,
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func echoRepo() *mockTourRepo {
	// A repo that echoes whatever it receives back — useful for Create/Update
	// tests that only care about validation logic, not what the DB returns.
	return &mockTourRepo{
		create: func(_ context.Context, t domain.Tour) (domain.Tour, error) { return t, nil },
		update: func(_ context.Context, t domain.Tour) (domain.Tour, error) { return t, nil },
	}
}

func newService(r repo.TourRepo, images storage.ImageStore) *service.TourService {
	if images == nil {
		images = &mockImageStore{}
	}
	return service.NewTourService(r, images)
}

// ---- Create tests ----------------------------------------------------------

func TestTourService_Create_Valid(t *testing.T) {
	svc := newService(echoRepo(), nil)

	got, err := svc.Create(context.Background(), validTour())

	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Title)
}

func TestTourService_Create_MissingTitle(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.Title = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), tour)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Create_MissingDescription(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.Description = ""

	_, err := svc.Create(context.Background(), tour)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Create_MissingDates(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.StartDate = time.Time{}

	_, err := svc.Create(context.Background(), tour)
	assert.ErrorIs(t, err, domain.ErrValidation)

	tour = validTour()
	tour.EndDate = time.Time{}

	_, err = svc.Create(context.Background(), tour)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.EndDate = tour.StartDate.AddDate(0, 0, -1) // one day before start

	_, err := svc.Create(context.Background(), tour)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Create_SameDayTourIsValid(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.EndDate = tour.StartDate // a one-day tour is valid

	_, err := svc.Create(context.Background(), tour)

	assert.NoError(t, err)
}

func TestTourService_Create_NegativePriceIsNotRejected(t *testing.T) {
	// Price is unconstrained beyond presence; the store accepts any number.
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.Price = -1

	_, err := svc.Create(context.Background(), tour)

	assert.NoError(t, err)
}

func TestTourService_Create_RejectsExistingID(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.ID = uuid.New() // already persisted — must go through Update

	_, err := svc.Create(context.Background(), tour)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Create_NormalizesDates(t *testing.T) {
	var persisted domain.Tour
	r := &mockTourRepo{
		create: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			persisted = tour
			return tour, nil
		},
	}
	svc := newService(r, nil)

	tour := validTour()
	tour.StartDate = time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), tour)

	require.NoError(t, err)
	// The store receives a UTC-midnight value for date-only columns.
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), persisted.StartDate)
}

func TestTourService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTourRepo{
		create: func(_ context.Context, _ domain.Tour) (domain.Tour, error) {
			return domain.Tour{}, repoErr
		},
	}
	svc := newService(r, nil)

	_, err := svc.Create(context.Background(), validTour())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- List tests ------------------------------------------------------------

func TestTourService_List(t *testing.T) {
	tours := []domain.Tour{validTour(), validTour()}
	r := &mockTourRepo{
		list: func(_ context.Context) ([]domain.Tour, error) { return tours, nil },
	}
	svc := newService(r, nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTourService_List_Empty(t *testing.T) {
	r := &mockTourRepo{
		list: func(_ context.Context) ([]domain.Tour, error) { return nil, nil },
	}
	svc := newService(r, nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	// Should return an empty slice, not nil — callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

func TestTourService_Update_Valid(t *testing.T) {
	svc := newService(echoRepo(), nil)

	tour := validTour()
	tour.ID = uuid.New()
	tour.Title = "X"

	got, err := svc.Update(context.Background(), tour)

	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, tour.ID, got.ID, "ID must be unchanged")
}

func TestTourService_Update_MissingID(t *testing.T) {
	svc := newService(echoRepo(), nil)

	_, err := svc.Update(context.Background(), validTour())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTourService_Update_NotFound(t *testing.T) {
	r := &mockTourRepo{
		update: func(_ context.Context, _ domain.Tour) (domain.Tour, error) {
			return domain.Tour{}, domain.ErrNotFound
		},
	}
	svc := newService(r, nil)

	tour := validTour()
	tour.ID = uuid.New()

	_, err := svc.Update(context.Background(), tour)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Submit tests ----------------------------------------------------------

func TestTourService_Submit_NoFile_CreatesOnce(t *testing.T) {
	creates := 0
	r := &mockTourRepo{
		create: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			creates++
			tour.ID = uuid.New()
			return tour, nil
		},
	}
	images := &mockImageStore{}
	svc := service.NewTourService(r, images)

	got, err := svc.Submit(context.Background(), validTour(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, creates, "create is called exactly once")
	assert.Equal(t, 0, images.uploads, "uploader is never called without a file")
	assert.True(t, got.Persisted())
}

func TestTourService_Submit_WithFile_AttachesStoredPath(t *testing.T) {
	var persisted domain.Tour
	r := &mockTourRepo{
		create: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			persisted = tour
			return tour, nil
		},
	}
	images := &mockImageStore{
		result: domain.UploadResult{Path: "tour_images/abc.png", FileName: "abc.png"},
	}
	svc := service.NewTourService(r, images)

	file := &storage.ImageFile{Name: "photo.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("x")}
	_, err := svc.Submit(context.Background(), validTour(), file)

	require.NoError(t, err)
	assert.Equal(t, 1, images.uploads)
	assert.Equal(t, "tour_images/abc.png", persisted.ImageURL)
}

func TestTourService_Submit_UploadFailureAbortsPersist(t *testing.T) {
	creates, updates := 0, 0
	r := &mockTourRepo{
		create: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			creates++
			return tour, nil
		},
		update: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			updates++
			return tour, nil
		},
	}
	images := &mockImageStore{err: domain.ErrUpload}
	svc := service.NewTourService(r, images)

	file := &storage.ImageFile{Name: "photo.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("x")}
	_, err := svc.Submit(context.Background(), validTour(), file)

	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Equal(t, 0, creates, "create must not run after a failed upload")
	assert.Equal(t, 0, updates, "update must not run after a failed upload")
}

func TestTourService_Submit_WithID_Updates(t *testing.T) {
	updates := 0
	r := &mockTourRepo{
		update: func(_ context.Context, tour domain.Tour) (domain.Tour, error) {
			updates++
			return tour, nil
		},
	}
	svc := newService(r, nil)

	tour := validTour()
	tour.ID = uuid.New()

	_, err := svc.Submit(context.Background(), tour, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, updates)
}

// ---- Delete tests ----------------------------------------------------------

func TestTourService_Delete_OK(t *testing.T) {
	want := validTour()
	want.ID = uuid.New()
	r := &mockTourRepo{
		delete: func(_ context.Context, _ uuid.UUID) (domain.Tour, error) { return want, nil },
	}
	svc := newService(r, nil)

	got, err := svc.Delete(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID, "delete returns the prior record")
}

func TestTourService_Delete_ZeroID_NoRepoCall(t *testing.T) {
	deletes := 0
	r := &mockTourRepo{
		delete: func(_ context.Context, _ uuid.UUID) (domain.Tour, error) {
			deletes++
			return domain.Tour{}, nil
		},
	}
	svc := newService(r, nil)

	_, err := svc.Delete(context.Background(), uuid.Nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, deletes, "no repo call for a zero id")
}

func TestTourService_Delete_NotFound(t *testing.T) {
	r := &mockTourRepo{
		delete: func(_ context.Context, _ uuid.UUID) (domain.Tour, error) {
			return domain.Tour{}, domain.ErrNotFound
		},
	}
	svc := newService(r, nil)

	_, err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
