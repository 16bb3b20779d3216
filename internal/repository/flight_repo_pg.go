package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type FlightRepository interface {
	Upsert(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ListByAirportWindow(ctx context.Context, airport string, from, to time.Time) ([]domain.Flight, error)
	DelayAggregates(ctx context.Context, airport string, from, to time.Time) (*DelayAggregates, error)
}

// DelayAggregates is the raw aggregate row OTP stats are computed from.
type DelayAggregates struct {
	TotalFlights    int
	OnTimeFlights   int
	AvgDelayMinutes float64
	MaxDelayMinutes int
	WorstAirline    string
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, aircraft_type, kind, airport, terminal, gate, scheduled_time, actual_time, delay_minutes, passenger_count, international, virgin_atlantic, created_at, updated_at`

func (r *PGFlightRepository) Upsert(ctx context.Context, f *domain.Flight) error {
	row := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, aircraft_type, kind, airport, terminal, gate, scheduled_time, actual_time, delay_minutes, passenger_count, international, virgin_atlantic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (flight_number, kind, scheduled_time) DO UPDATE SET
			actual_time = EXCLUDED.actual_time,
			delay_minutes = EXCLUDED.delay_minutes,
			gate = EXCLUDED.gate,
			terminal = EXCLUDED.terminal,
			passenger_count = EXCLUDED.passenger_count,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		f.FlightNumber, f.Airline, f.AircraftType, f.Kind, f.Airport, f.Terminal, f.Gate,
		f.ScheduledTime, f.ActualTime, f.DelayMinutes, f.PassengerCount, f.International, f.VirginAtlantic)
	return row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) ListByAirportWindow(ctx context.Context, airport string, from, to time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE airport=$1 AND scheduled_time >= $2 AND scheduled_time < $3 ORDER BY scheduled_time`, airport, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) DelayAggregates(ctx context.Context, airport string, from, to time.Time) (*DelayAggregates, error) {
	var agg DelayAggregates
	row := r.db.QueryRow(ctx, `SELECT
			count(*),
			count(*) FILTER (WHERE delay_minutes < $4),
			coalesce(avg(delay_minutes), 0),
			coalesce(max(delay_minutes), 0)
		FROM flights WHERE airport=$1 AND scheduled_time >= $2 AND scheduled_time < $3`,
		airport, from, to, domain.OTPThresholdMinutes)
	if err := row.Scan(&agg.TotalFlights, &agg.OnTimeFlights, &agg.AvgDelayMinutes, &agg.MaxDelayMinutes); err != nil {
		return nil, err
	}

	// Worst airline by average delay, only meaningful with some volume.
	row = r.db.QueryRow(ctx, `SELECT airline FROM flights
		WHERE airport=$1 AND scheduled_time >= $2 AND scheduled_time < $3
		GROUP BY airline HAVING count(*) >= 3
		ORDER BY avg(delay_minutes) DESC LIMIT 1`, airport, from, to)
	if err := row.Scan(&agg.WorstAirline); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return &agg, nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.AircraftType, &f.Kind, &f.Airport, &f.Terminal, &f.Gate, &f.ScheduledTime, &f.ActualTime, &f.DelayMinutes, &f.PassengerCount, &f.International, &f.VirginAtlantic, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
