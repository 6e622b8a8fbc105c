package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tripdesk_backend/internal/models"
)

// SettingRepository defines the interface for application settings operations.
type SettingRepository interface {
	GetSettings() ([]models.ApplicationSetting, error)
	GetSettingByKey(key string) (*models.ApplicationSetting, error)
	UpsertSetting(executor SQLExecutor, setting *models.ApplicationSetting) (*models.ApplicationSetting, error)
	DeleteSetting(executor SQLExecutor, key string) error
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

func scanSettingRow(row scanner) (*models.ApplicationSetting, error) {
	setting := &models.ApplicationSetting{}
	var value, description sql.NullString
	err := row.Scan(&setting.ID, &setting.SettingKey, &value, &description,
		&setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
	}
	if value.Valid {
		setting.SettingValue = &value.String
	}
	if description.Valid {
		setting.Description = &description.String
	}
	return setting, nil
}

func (r *settingRepository) GetSettings() ([]models.ApplicationSetting, error) {
	settings := []models.ApplicationSetting{}
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings
	          ORDER BY setting_key ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		setting, scanErr := scanSettingRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		settings = append(settings, *setting)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating setting rows: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingRepository) GetSettingByKey(key string) (*models.ApplicationSetting, error) {
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings WHERE setting_key = $1`
	return scanSettingRow(r.db.QueryRow(query, key))
}

// UpsertSetting inserts or overwrites the value for a key.
func (r *settingRepository) UpsertSetting(executor SQLExecutor, setting *models.ApplicationSetting) (*models.ApplicationSetting, error) {
	query := `INSERT INTO application_settings (setting_key, setting_value, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (setting_key) DO UPDATE SET
	            setting_value = EXCLUDED.setting_value,
	            description = COALESCE(EXCLUDED.description, application_settings.description),
	            updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		setting.SettingKey, setting.SettingValue, setting.Description, currentTime,
	).Scan(&setting.ID, &setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: upserting setting %q: %v", ErrDatabaseError, setting.SettingKey, err)
	}
	return setting, nil
}

func (r *settingRepository) DeleteSetting(executor SQLExecutor, key string) error {
	result, err := executor.Exec(`DELETE FROM application_settings WHERE setting_key = $1`, key)
	if err != nil {
		return fmt.Errorf("%w: deleting setting %q: %v", ErrDatabaseError, key, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
