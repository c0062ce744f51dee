// Package services содержит логику бизнес-уровня записи на прием:
// атомарное бронирование слота, транзакционную отмену и просмотр
// собственных записей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/slotkey"
	"github.com/magabrotheeeer/appointment-scheduler/internal/metrics"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

type AppointmentRepository interface {
	BookAppointment(ctx context.Context, userUID, providerUID, slotDate, slotTime string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, userUID string, appointmentID int, asAdmin bool) (*models.Appointment, error)
	ListUserAppointments(ctx context.Context, userUID string) ([]*models.Appointment, error)
}

// SlotChangePublisher отдает уведомление об изменении занятости слотов.
// Доставка необязательная: бронирование не откатывается из-за брокера.
type SlotChangePublisher interface {
	PublishSlotChange(change models.SlotChange) error
}

// CatalogInvalidator сбрасывает кэш каталога специалистов после изменения
// занятости слотов.
type CatalogInvalidator interface {
	InvalidateList(ctx context.Context)
}

type BookingService struct {
	repo      AppointmentRepository
	publisher SlotChangePublisher
	catalog   CatalogInvalidator
	log       *slog.Logger
}

func NewBookingService(repo AppointmentRepository, publisher SlotChangePublisher,
	catalog CatalogInvalidator, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		catalog:   catalog,
		log:       log,
	}
}

// Book бронирует слот у специалиста. Дата валидируется до обращения к базе,
// метка времени нормализуется внутри репозитория. Занятый слот и недоступный
// специалист приходят именованными ошибками репозитория.
func (s *BookingService) Book(ctx context.Context, userUID string, req models.DummyBookRequest) (*models.Appointment, error) {
	const op = "booking.Book"

	if err := slotkey.ValidateDate(req.SlotDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	appointment, err := s.repo.BookAppointment(ctx, userUID, req.ProviderUID, req.SlotDate, req.SlotTime)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.BookingConflictsTotal.Inc()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.BookingsTotal.Inc()

	s.log.Info("appointment booked",
		slog.Int("id", appointment.ID),
		slog.String("provider_uid", appointment.ProviderUID),
		slog.String("slot_date", appointment.SlotDate),
		slog.String("slot_time", appointment.SlotTime))

	s.notifySlotChange(ctx, appointment)
	return appointment, nil
}

// Cancel отменяет запись владельца и освобождает слот в той же транзакции.
// asAdmin снимает проверку владения.
func (s *BookingService) Cancel(ctx context.Context, userUID string, appointmentID int, asAdmin bool) (*models.Appointment, error) {
	const op = "booking.Cancel"

	appointment, err := s.repo.CancelAppointment(ctx, userUID, appointmentID, asAdmin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.CancellationsTotal.Inc()

	s.log.Info("appointment cancelled",
		slog.Int("id", appointment.ID),
		slog.String("provider_uid", appointment.ProviderUID))

	s.notifySlotChange(ctx, appointment)
	return appointment, nil
}

// ListForUser возвращает записи пользователя, включая отмененные.
func (s *BookingService) ListForUser(ctx context.Context, userUID string) ([]*models.Appointment, error) {
	const op = "booking.ListForUser"

	appointments, err := s.repo.ListUserAppointments(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return appointments, nil
}

func (s *BookingService) notifySlotChange(ctx context.Context, appointment *models.Appointment) {
	if s.catalog != nil {
		s.catalog.InvalidateList(ctx)
	}
	if s.publisher == nil {
		return
	}
	change := models.SlotChange{
		ProviderUID: appointment.ProviderUID,
		SlotDate:    appointment.SlotDate,
	}
	if err := s.publisher.PublishSlotChange(change); err != nil {
		s.log.Error("failed to publish slot change", sl.Err(err))
	}
}
