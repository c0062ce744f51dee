package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/slotkey"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

// BookAppointment бронирует слот одной транзакцией: строка специалиста
// блокируется (SELECT ... FOR UPDATE), журнал занятых слотов и таблица
// записей проверяются под блокировкой, затем журнал пополняется и
// вставляется запись со снимками данных сторон. Нарушение частичного
// уникального индекса на этапе вставки трактуется как ErrSlotTaken:
// из N одновременных запросов на один и тот же слот фиксируется ровно один.
//
// Метка времени нормализуется до любого сравнения, поэтому лексические
// варианты одного слота считаются одинаковыми.
func (s *Storage) BookAppointment(ctx context.Context, userUID, providerUID, slotDate, slotTime string) (*models.Appointment, error) {
	const op = "storage.BookAppointment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	normalized := slotkey.NormalizeTime(slotTime)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	provider, err := lockProvider(ctx, tx, providerUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrProviderUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !provider.Available {
		return nil, fmt.Errorf("%s: %w", op, ErrProviderUnavailable)
	}

	for _, taken := range provider.SlotsBooked[slotDate] {
		if slotkey.SameTime(taken, normalized) {
			return nil, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
	}

	// Запасная проверка по источнику истины на случай рассинхронизации журнала.
	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM appointments
		     WHERE provider_uid = $1 AND slot_date = $2
		       AND lower(btrim(slot_time)) = $3 AND NOT cancelled
		 )`, providerUID, slotDate, normalized).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, ErrSlotTaken)
	}

	provider.SlotsBooked.Add(slotDate, normalized)
	if err = writeLedger(ctx, tx, providerUID, provider.SlotsBooked); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{}
	err = tx.QueryRowContext(ctx,
		`SELECT uid, name, email FROM users WHERE uid = $1`, userUID).
		Scan(&user.UID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	appt := &models.Appointment{
		UserUID:      userUID,
		ProviderUID:  providerUID,
		SlotDate:     slotDate,
		SlotTime:     normalized,
		UserData:     user.Snapshot(),
		ProviderData: provider.Snapshot(),
		Amount:       provider.Fee,
	}
	userData, err := json.Marshal(appt.UserData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	providerData, err := json.Marshal(appt.ProviderData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO appointments (user_uid, provider_uid, slot_date, slot_time,
		     user_snapshot, provider_snapshot, amount, cancelled)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		 RETURNING id, created_at`,
		userUID, providerUID, slotDate, normalized,
		userData, providerData, appt.Amount).Scan(&appt.ID, &appt.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%s: %w", op, ErrSlotTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return appt, nil
}

// CancelAppointment отменяет запись той же транзакцией, которой она
// создавалась: пометка cancelled и освобождение слота в журнале специалиста
// фиксируются вместе. При asAdmin=true проверка владельца пропускается.
func (s *Storage) CancelAppointment(ctx context.Context, userUID string, appointmentID int, asAdmin bool) (*models.Appointment, error) {
	const op = "storage.CancelAppointment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	appt := &models.Appointment{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_uid, provider_uid, slot_date, slot_time, cancelled
		 FROM appointments
		 WHERE id = $1
		 FOR UPDATE`, appointmentID).
		Scan(&appt.ID, &appt.UserUID, &appt.ProviderUID, &appt.SlotDate,
			&appt.SlotTime, &appt.Cancelled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !asAdmin && appt.UserUID != userUID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}
	if appt.Cancelled {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyCancelled)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE appointments SET cancelled = true WHERE id = $1`, appt.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	provider, err := lockProvider(ctx, tx, appt.ProviderUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	provider.SlotsBooked.Remove(appt.SlotDate, slotkey.NormalizeTime(appt.SlotTime))
	if err = writeLedger(ctx, tx, appt.ProviderUID, provider.SlotsBooked); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	appt.Cancelled = true
	return appt, nil
}

// lockProvider читает строку специалиста под блокировкой FOR UPDATE,
// сериализуя конкурирующие изменения журнала занятых слотов.
func lockProvider(ctx context.Context, tx *sql.Tx, providerUID string) (*models.Provider, error) {
	p := &models.Provider{}
	var rawSlots []byte
	err := tx.QueryRowContext(ctx,
		`SELECT uid, name, specialty, fee, available, slots_booked
		 FROM providers
		 WHERE uid = $1
		 FOR UPDATE`, providerUID).
		Scan(&p.UID, &p.Name, &p.Specialty, &p.Fee, &p.Available, &rawSlots)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(rawSlots, &p.SlotsBooked); err != nil {
		return nil, err
	}
	if p.SlotsBooked == nil {
		p.SlotsBooked = models.SlotLedger{}
	}
	return p, nil
}

func writeLedger(ctx context.Context, tx *sql.Tx, providerUID string, ledger models.SlotLedger) error {
	rawSlots, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE providers SET slots_booked = $2 WHERE uid = $1`, providerUID, rawSlots)
	return err
}

const appointmentColumns = `id, user_uid, provider_uid, slot_date, slot_time,
			      user_snapshot, provider_snapshot, amount, cancelled, paid, completed, created_at`

func scanAppointment(rows *sql.Rows) (*models.Appointment, error) {
	var a models.Appointment
	var userData, providerData []byte
	if err := rows.Scan(&a.ID, &a.UserUID, &a.ProviderUID, &a.SlotDate, &a.SlotTime,
		&userData, &providerData, &a.Amount, &a.Cancelled, &a.Paid, &a.Completed,
		&a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(userData, &a.UserData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(providerData, &a.ProviderData); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListUserAppointments возвращает записи пользователя, новые первыми.
func (s *Storage) ListUserAppointments(ctx context.Context, userUID string) ([]*models.Appointment, error) {
	const op = "storage.ListUserAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + appointmentColumns + `
			  FROM appointments
			  WHERE user_uid = $1
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllAppointments возвращает все записи с пагинацией, новые первыми.
func (s *Storage) ListAllAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error) {
	const op = "storage.ListAllAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + appointmentColumns + `
			  FROM appointments
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAppointments возвращает количество неотмененных записей.
func (s *Storage) CountAppointments(ctx context.Context) (int, error) {
	const op = "storage.CountAppointments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE NOT cancelled`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
