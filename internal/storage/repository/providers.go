package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

// GetProvider возвращает специалиста по его UID вместе с журналом занятых слотов.
func (s *Storage) GetProvider(ctx context.Context, providerUID string) (*models.Provider, error) {
	const op = "storage.GetProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, specialty, about, fee, available, slots_booked
			  FROM providers
			  WHERE uid = $1`
	p := &models.Provider{}
	var rawSlots []byte
	err := s.DB.QueryRowContext(ctx, query, providerUID).Scan(
		&p.UID, &p.Name, &p.Specialty, &p.About, &p.Fee, &p.Available, &rawSlots)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(rawSlots, &p.SlotsBooked); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListAvailableProviders возвращает список принимающих записи специалистов.
func (s *Storage) ListAvailableProviders(ctx context.Context) ([]*models.Provider, error) {
	const op = "storage.ListAvailableProviders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, specialty, about, fee, available, slots_booked
			  FROM providers
			  WHERE available
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Provider
	for rows.Next() {
		var p models.Provider
		var rawSlots []byte
		if err = rows.Scan(&p.UID, &p.Name, &p.Specialty, &p.About, &p.Fee,
			&p.Available, &rawSlots); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(rawSlots, &p.SlotsBooked); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateProvider сохраняет нового специалиста и возвращает его UID.
func (s *Storage) CreateProvider(ctx context.Context, p models.Provider) (string, error) {
	const op = "storage.CreateProvider"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var uid string
	query := `INSERT INTO providers (name, specialty, about, fee, available, slots_booked)
			  VALUES ($1, $2, $3, $4, $5, '{}'::jsonb)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Specialty, p.About, p.Fee, p.Available).Scan(&uid); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// CountProviders возвращает количество специалистов.
func (s *Storage) CountProviders(ctx context.Context) (int, error) {
	const op = "storage.CountProviders"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM providers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
