package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	services "github.com/magabrotheeeer/appointment-scheduler/internal/services/booking"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для AppointmentRepository
type AppointmentRepoMock struct {
	mock.Mock
}

func (m *AppointmentRepoMock) BookAppointment(ctx context.Context, userUID, providerUID, slotDate, slotTime string) (*models.Appointment, error) {
	args := m.Called(ctx, userUID, providerUID, slotDate, slotTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *AppointmentRepoMock) CancelAppointment(ctx context.Context, userUID string, appointmentID int, asAdmin bool) (*models.Appointment, error) {
	args := m.Called(ctx, userUID, appointmentID, asAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *AppointmentRepoMock) ListUserAppointments(ctx context.Context, userUID string) ([]*models.Appointment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

// Мок для SlotChangePublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishSlotChange(change models.SlotChange) error {
	args := m.Called(change)
	return args.Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func bookRequest() models.DummyBookRequest {
	return models.DummyBookRequest{
		ProviderUID: "9f4c6a1e-0000-0000-0000-000000000001",
		SlotDate:    "14_9_2026",
		SlotTime:    "10:00 AM",
	}
}

func bookedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:          42,
		UserUID:     "user-uid-1",
		ProviderUID: "9f4c6a1e-0000-0000-0000-000000000001",
		SlotDate:    "14_9_2026",
		SlotTime:    "10:00 am",
	}
}

func TestBookingService_Book(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyBookRequest
		setupMocks func(r *AppointmentRepoMock, p *PublisherMock)
		wantErr    error
		wantID     int
	}{
		{
			name: "successful booking publishes slot change",
			req:  bookRequest(),
			setupMocks: func(r *AppointmentRepoMock, p *PublisherMock) {
				r.On("BookAppointment", mock.Anything, "user-uid-1",
					"9f4c6a1e-0000-0000-0000-000000000001", "14_9_2026", "10:00 AM").
					Return(bookedAppointment(), nil).Once()
				p.On("PublishSlotChange", models.SlotChange{
					ProviderUID: "9f4c6a1e-0000-0000-0000-000000000001",
					SlotDate:    "14_9_2026",
				}).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name: "slot taken is passed through",
			req:  bookRequest(),
			setupMocks: func(r *AppointmentRepoMock, p *PublisherMock) {
				r.On("BookAppointment", mock.Anything, "user-uid-1",
					"9f4c6a1e-0000-0000-0000-000000000001", "14_9_2026", "10:00 AM").
					Return(nil, repository.ErrSlotTaken).Once()
			},
			wantErr: repository.ErrSlotTaken,
		},
		{
			name: "unavailable provider is passed through",
			req:  bookRequest(),
			setupMocks: func(r *AppointmentRepoMock, p *PublisherMock) {
				r.On("BookAppointment", mock.Anything, "user-uid-1",
					"9f4c6a1e-0000-0000-0000-000000000001", "14_9_2026", "10:00 AM").
					Return(nil, repository.ErrProviderUnavailable).Once()
			},
			wantErr: repository.ErrProviderUnavailable,
		},
		{
			name: "malformed date never reaches the repository",
			req: models.DummyBookRequest{
				ProviderUID: "9f4c6a1e-0000-0000-0000-000000000001",
				SlotDate:    "2026-09-14",
				SlotTime:    "10:00 AM",
			},
			setupMocks: func(r *AppointmentRepoMock, p *PublisherMock) {},
			wantErr:    nil, // проверяется только факт ошибки
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(AppointmentRepoMock)
			pub := new(PublisherMock)
			tt.setupMocks(repo, pub)

			svc := services.NewBookingService(repo, pub, nil, NewNoopLogger())

			got, err := svc.Book(context.Background(), "user-uid-1", tt.req)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantID != 0:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
			default:
				assert.Error(t, err)
			}
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestBookingService_Book_PublisherFailureIsNotFatal(t *testing.T) {
	repo := new(AppointmentRepoMock)
	pub := new(PublisherMock)
	repo.On("BookAppointment", mock.Anything, "user-uid-1",
		"9f4c6a1e-0000-0000-0000-000000000001", "14_9_2026", "10:00 AM").
		Return(bookedAppointment(), nil).Once()
	pub.On("PublishSlotChange", mock.Anything).Return(assert.AnError).Once()

	svc := services.NewBookingService(repo, pub, nil, NewNoopLogger())

	got, err := svc.Book(context.Background(), "user-uid-1", bookRequest())
	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("owner cancels own appointment", func(t *testing.T) {
		repo := new(AppointmentRepoMock)
		pub := new(PublisherMock)
		cancelled := bookedAppointment()
		cancelled.Cancelled = true
		repo.On("CancelAppointment", mock.Anything, "user-uid-1", 42, false).
			Return(cancelled, nil).Once()
		pub.On("PublishSlotChange", mock.Anything).Return(nil).Once()

		svc := services.NewBookingService(repo, pub, nil, NewNoopLogger())

		got, err := svc.Cancel(context.Background(), "user-uid-1", 42, false)
		require.NoError(t, err)
		assert.True(t, got.Cancelled)
	})

	t.Run("foreign appointment is rejected", func(t *testing.T) {
		repo := new(AppointmentRepoMock)
		repo.On("CancelAppointment", mock.Anything, "user-uid-2", 42, false).
			Return(nil, repository.ErrNotOwner).Once()

		svc := services.NewBookingService(repo, new(PublisherMock), nil, NewNoopLogger())

		_, err := svc.Cancel(context.Background(), "user-uid-2", 42, false)
		assert.ErrorIs(t, err, repository.ErrNotOwner)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		repo := new(AppointmentRepoMock)
		repo.On("CancelAppointment", mock.Anything, "user-uid-1", 42, false).
			Return(nil, repository.ErrAlreadyCancelled).Once()

		svc := services.NewBookingService(repo, new(PublisherMock), nil, NewNoopLogger())

		_, err := svc.Cancel(context.Background(), "user-uid-1", 42, false)
		assert.ErrorIs(t, err, repository.ErrAlreadyCancelled)
	})
}

func TestBookingService_ListForUser(t *testing.T) {
	repo := new(AppointmentRepoMock)
	repo.On("ListUserAppointments", mock.Anything, "user-uid-1").
		Return([]*models.Appointment{bookedAppointment()}, nil).Once()

	svc := services.NewBookingService(repo, new(PublisherMock), nil, NewNoopLogger())

	got, err := svc.ListForUser(context.Background(), "user-uid-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 42, got[0].ID)
}
