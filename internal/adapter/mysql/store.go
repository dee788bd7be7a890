package mysql

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/kumorigo/amedas-etl/internal/domain"
	"github.com/kumorigo/amedas-etl/internal/observability"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*
var embeddedMigrations embed.FS

// Store persists enriched observation events in MySQL.
// It implements pipeline.BatchLoader and is optional: the service only
// constructs one when a DSN is configured.
type Store struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore connects to MySQL, runs pending migrations, and returns a Store.
func NewStore(dsn string, logger *slog.Logger, metrics *observability.Metrics) (*Store, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{FileSystem: embeddedMigrations, Root: "migrations"}
	applied, err := migrate.Exec(db.DB, "mysql", source, migrate.Up)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if applied > 0 {
		logger.Info("applied migrations", "count", applied)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(10 * time.Minute)

	return &Store{db: db, logger: logger, metrics: metrics}, nil
}

const upsertObservation = `
INSERT INTO observations (
    id, station, observed_at,
    pressure_hpa, temp_c, humidity_percent, visibility_m,
    precipitation_10m_mm, snow_1h_cm, wind_mps,
    wind_direction, wind_compass,
    weather_code, weather, weather_en, processed_at
) VALUES (
    :id, :station, :observed_at,
    :pressure_hpa, :temp_c, :humidity_percent, :visibility_m,
    :precipitation_10m_mm, :snow_1h_cm, :wind_mps,
    :wind_direction, :wind_compass,
    :weather_code, :weather, :weather_en, :processed_at
) ON DUPLICATE KEY UPDATE
    pressure_hpa = VALUES(pressure_hpa),
    temp_c = VALUES(temp_c),
    humidity_percent = VALUES(humidity_percent),
    visibility_m = VALUES(visibility_m),
    precipitation_10m_mm = VALUES(precipitation_10m_mm),
    snow_1h_cm = VALUES(snow_1h_cm),
    wind_mps = VALUES(wind_mps),
    wind_direction = VALUES(wind_direction),
    wind_compass = VALUES(wind_compass),
    weather_code = VALUES(weather_code),
    weather = VALUES(weather),
    weather_en = VALUES(weather_en),
    processed_at = VALUES(processed_at)`

// observationRow is the flat database shape of an ObservationEvent.
type observationRow struct {
	ID                 string    `db:"id"`
	Station            string    `db:"station"`
	ObservedAt         time.Time `db:"observed_at"`
	PressureHPa        *float64  `db:"pressure_hpa"`
	TempC              *float64  `db:"temp_c"`
	HumidityPercent    *float64  `db:"humidity_percent"`
	VisibilityM        *float64  `db:"visibility_m"`
	Precipitation10mMM *float64  `db:"precipitation_10m_mm"`
	Snow1hCM           *float64  `db:"snow_1h_cm"`
	WindMPS            *float64  `db:"wind_mps"`
	WindDirection      int       `db:"wind_direction"`
	WindCompass        string    `db:"wind_compass"`
	WeatherCode        int       `db:"weather_code"`
	Weather            string    `db:"weather"`
	WeatherEN          string    `db:"weather_en"`
	ProcessedAt        time.Time `db:"processed_at"`
}

func rowFromEvent(event domain.ObservationEvent) observationRow {
	return observationRow{
		ID:                 event.ID,
		Station:            event.Station,
		ObservedAt:         event.ObservedAt,
		PressureHPa:        event.PressureHPa,
		TempC:              event.TempC,
		HumidityPercent:    event.HumidityPercent,
		VisibilityM:        event.VisibilityM,
		Precipitation10mMM: event.Precipitation10mMM,
		Snow1hCM:           event.Snow1hCM,
		WindMPS:            event.WindMPS,
		WindDirection:      event.WindDirection,
		WindCompass:        event.WindCompass,
		WeatherCode:        event.WeatherCode,
		Weather:            event.Weather,
		WeatherEN:          event.WeatherEN,
		ProcessedAt:        event.ProcessedAt,
	}
}

// LoadBatch upserts a batch of events inside a single transaction.
// Deterministic IDs make replayed batches idempotent.
func (s *Store) LoadBatch(ctx context.Context, events []domain.ObservationEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.metrics.StoreErrors.Inc()
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, event := range events {
		if _, err := tx.NamedExecContext(ctx, upsertObservation, rowFromEvent(event)); err != nil {
			s.metrics.StoreErrors.Inc()
			return fmt.Errorf("upsert observation %s: %w", event.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.metrics.StoreErrors.Inc()
		return fmt.Errorf("commit tx: %w", err)
	}

	s.metrics.StoreInserts.Add(float64(len(events)))
	return nil
}

// LatestByStation returns the most recent stored event for a station.
func (s *Store) LatestByStation(ctx context.Context, station string) (domain.ObservationEvent, error) {
	const query = `
SELECT id, station, observed_at,
       pressure_hpa, temp_c, humidity_percent, visibility_m,
       precipitation_10m_mm, snow_1h_cm, wind_mps,
       wind_direction, wind_compass,
       weather_code, weather, weather_en, processed_at
FROM observations
WHERE station = ?
ORDER BY observed_at DESC
LIMIT 1`

	var row observationRow
	if err := s.db.GetContext(ctx, &row, query, station); err != nil {
		return domain.ObservationEvent{}, fmt.Errorf("latest observation for %s: %w", station, err)
	}
	return row.toEvent(), nil
}

func (row observationRow) toEvent() domain.ObservationEvent {
	return domain.ObservationEvent{
		ID:                 row.ID,
		Station:            row.Station,
		ObservedAt:         row.ObservedAt,
		PressureHPa:        row.PressureHPa,
		TempC:              row.TempC,
		HumidityPercent:    row.HumidityPercent,
		VisibilityM:        row.VisibilityM,
		Precipitation10mMM: row.Precipitation10mMM,
		Snow1hCM:           row.Snow1hCM,
		WindMPS:            row.WindMPS,
		WindDirection:      row.WindDirection,
		WindCompass:        row.WindCompass,
		WeatherCode:        row.WeatherCode,
		Weather:            row.Weather,
		WeatherEN:          row.WeatherEN,
		ProcessedAt:        row.ProcessedAt,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}
