package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type mockBookingRepo struct {
	bookings  map[int64]*domain.Booking
	cancelled []int64
	updated   map[int64]domain.BookingStatus
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		updated:  make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByGroupID(_ context.Context, groupID string) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.GroupID != nil && *b.GroupID == groupID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.updated[id] = status
	return nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, id int64, _ string) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.cancelled = append(m.cancelled, id)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(id, customerID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		CustomerID:   customerID,
		StaffID:      1,
		ServiceID:    1,
		BookingDate:  time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("10:30"),
		Status:       status,
		ServiceName:  "Маникюр",
		ServicePrice: 50.0,
	}
}

func TestGetByID(t *testing.T) {
	repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	t.Run("owner gets booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Маникюр", resp.ServiceName)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("foreign booking is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 200)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetCustomerBookings(t *testing.T) {
	repo := newMockBookingRepo(
		testBooking(1, 100, domain.StatusConfirmed),
		testBooking(2, 100, domain.StatusCancelled),
		testBooking(3, 200, domain.StatusConfirmed),
	)
	svc := NewService(repo, noopLogger{})

	t.Run("all bookings of customer", func(t *testing.T) {
		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
			Status:     ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			CustomerID: 100,
			Status:     ptr.Ptr("done"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("single booking is cancelled", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			CustomerID:         100,
			CancellationReason: "не смогу прийти",
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.cancelled)
	})

	t.Run("group visit is cancelled entirely", func(t *testing.T) {
		groupID := "3f6c1a2e-0000-0000-0000-000000000001"
		first := testBooking(1, 100, domain.StatusConfirmed)
		first.GroupID = &groupID
		second := testBooking(2, 100, domain.StatusConfirmed)
		second.GroupID = &groupID
		second.StartTime = types.TimeString("10:30")
		second.EndTime = types.TimeString("11:00")

		repo := newMockBookingRepo(first, second)
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			CustomerID:         100,
			CancellationReason: "перенос",
		})
		require.NoError(t, err)
		assert.Len(t, repo.cancelled, 2)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusCompleted))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			CustomerID:         100,
			CancellationReason: "поздно",
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("foreign booking is denied", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			CustomerID:         200,
			CancellationReason: "чужая запись",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("allowed transition", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			CustomerID: 100,
			Status:     "in_progress",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, repo.updated[1])
	})

	t.Run("forbidden transition", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusCompleted))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			CustomerID: 100,
			Status:     "pending",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			CustomerID: 100,
			Status:     "done",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign booking is denied", func(t *testing.T) {
		repo := newMockBookingRepo(testBooking(1, 100, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			CustomerID: 200,
			Status:     "in_progress",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
