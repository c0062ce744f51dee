// Package services содержит логику бизнес-уровня администрирования:
// приостановку учетных записей, управление специалистами и сводку.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

// ErrZeroDuration возвращается при приостановке с нулевой длительностью.
var ErrZeroDuration = errors.New("suspension duration must be non-zero")

type UserAdminRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SetSuspension(ctx context.Context, userUID string, expiresAt time.Time) error
	ClearSuspension(ctx context.Context, userUID string) error
	CountUsers(ctx context.Context) (int, error)
}

type ProviderAdminRepository interface {
	CreateProvider(ctx context.Context, p models.Provider) (string, error)
	ListAvailableProviders(ctx context.Context) ([]*models.Provider, error)
	CountProviders(ctx context.Context) (int, error)
}

type AppointmentAdminRepository interface {
	ListAllAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error)
	CountAppointments(ctx context.Context) (int, error)
}

type SessionAdminRepository interface {
	DeleteSessionsForUser(ctx context.Context, userUID string) error
}

// CatalogInvalidator сбрасывает кэш списка специалистов после его изменения.
type CatalogInvalidator interface {
	InvalidateList(ctx context.Context)
}

// Dashboard сводные показатели для панели администратора.
type Dashboard struct {
	Users        int                   `json:"users"`
	Providers    int                   `json:"providers"`
	Appointments int                   `json:"appointments"`
	Latest       []*models.Appointment `json:"latest"`
}

type AdminService struct {
	users        UserAdminRepository
	providers    ProviderAdminRepository
	appointments AppointmentAdminRepository
	sessions     SessionAdminRepository
	catalog      CatalogInvalidator
	log          *slog.Logger
}

func NewAdminService(users UserAdminRepository, providers ProviderAdminRepository,
	appointments AppointmentAdminRepository, sessions SessionAdminRepository,
	catalog CatalogInvalidator, log *slog.Logger) *AdminService {
	return &AdminService{
		users:        users,
		providers:    providers,
		appointments: appointments,
		sessions:     sessions,
		catalog:      catalog,
		log:          log,
	}
}

// Suspend приостанавливает учетную запись до now + длительность и
// закрывает открытую сессию пользователя, иначе приостановка не вступила
// бы в силу до следующего входа. Возвращает момент окончания.
func (s *AdminService) Suspend(ctx context.Context, req models.DummySuspendRequest) (time.Time, error) {
	const op = "admin.Suspend"

	duration := req.Duration()
	if duration <= 0 {
		return time.Time{}, ErrZeroDuration
	}

	if _, err := s.users.GetUser(ctx, req.UserUID); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	expiresAt := time.Now().Add(duration)
	if err := s.users.SetSuspension(ctx, req.UserUID, expiresAt); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sessions.DeleteSessionsForUser(ctx, req.UserUID); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user suspended",
		slog.String("user_uid", req.UserUID),
		slog.Time("expires_at", expiresAt))
	return expiresAt, nil
}

// Unsuspend безусловно снимает приостановку.
func (s *AdminService) Unsuspend(ctx context.Context, userUID string) error {
	const op = "admin.Unsuspend"

	if _, err := s.users.GetUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.ClearSuspension(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user unsuspended", slog.String("user_uid", userUID))
	return nil
}

// ListAppointments возвращает страницу всех записей для панели администратора.
func (s *AdminService) ListAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error) {
	const op = "admin.ListAppointments"

	appointments, err := s.appointments.ListAllAppointments(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return appointments, nil
}

// GetDashboard собирает счетчики и пять последних записей.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	const op = "admin.GetDashboard"

	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	providers, err := s.providers.CountProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	appointments, err := s.appointments.CountAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	latest, err := s.appointments.ListAllAppointments(ctx, 5, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Dashboard{
		Users:        users,
		Providers:    providers,
		Appointments: appointments,
		Latest:       latest,
	}, nil
}

// AddProvider создает нового специалиста, по умолчанию доступного для записи.
func (s *AdminService) AddProvider(ctx context.Context, p models.Provider) (string, error) {
	const op = "admin.AddProvider"

	p.Available = true
	if p.SlotsBooked == nil {
		p.SlotsBooked = models.SlotLedger{}
	}
	uid, err := s.providers.CreateProvider(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if s.catalog != nil {
		s.catalog.InvalidateList(ctx)
	}
	s.log.Info("provider created", slog.String("provider_uid", uid))
	return uid, nil
}

// ListProviders возвращает специалистов для панели администратора.
func (s *AdminService) ListProviders(ctx context.Context) ([]*models.Provider, error) {
	const op = "admin.ListProviders"

	providers, err := s.providers.ListAvailableProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return providers, nil
}
