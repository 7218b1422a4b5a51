package vpcs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zerolugithub/gns3-server/internal/nio"
)

// Binding transport discriminators used in persisted records.
const (
	BindingUDP = "udp"
	BindingTAP = "tap"
)

// BindingRecord is the persisted form of one attached NIO.
type BindingRecord struct {
	Slot       int    `json:"slot"`
	Port       int    `json:"port"`
	Type       string `json:"type"`
	LocalPort  int    `json:"local_port,omitempty"`
	RemotePort int    `json:"remote_port,omitempty"`
	RemoteHost string `json:"remote_host,omitempty"`
	Device     string `json:"device,omitempty"`
}

// Record is the persisted form of a device. The pool identity is not
// stored; identities are reallocated when devices are restored.
type Record struct {
	Name       string
	Path       string
	Console    int
	ScriptFile string
	Bindings   []BindingRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Repository stores device records keyed by name.
type Repository interface {
	GetByName(ctx context.Context, name string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, name string) error
}

// SQLiteRepository is the SQLite implementation of Repository.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByName retrieves a device record by name.
// Returns ErrRecordNotFound if no record exists.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, path, console, script_file, bindings, created_at, updated_at
		FROM devices
		WHERE name = ?
	`, name)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get device %s: %w", name, err)
	}
	return rec, nil
}

// List returns all device records ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, path, console, script_file, bindings, created_at, updated_at
		FROM devices
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list devices: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan device record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list devices: %w", err)
	}
	return records, nil
}

// Save inserts or updates a device record. CreatedAt is preserved on
// update; UpdatedAt is always refreshed.
func (r *SQLiteRepository) Save(ctx context.Context, rec *Record) error {
	bindings, err := json.Marshal(rec.Bindings)
	if err != nil {
		return fmt.Errorf("could not encode bindings for device %s: %w", rec.Name, err)
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO devices (name, path, console, script_file, bindings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path,
			console = excluded.console,
			script_file = excluded.script_file,
			bindings = excluded.bindings,
			updated_at = excluded.updated_at
	`, rec.Name, rec.Path, rec.Console, rec.ScriptFile, string(bindings),
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("could not save device %s: %w", rec.Name, err)
	}
	return nil
}

// Delete removes a device record by name.
// Returns ErrRecordNotFound if no record exists.
func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("could not delete device %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete device %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec       Record
		bindings  string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&rec.Name, &rec.Path, &rec.Console, &rec.ScriptFile, &bindings, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bindings), &rec.Bindings); err != nil {
		return nil, fmt.Errorf("could not decode bindings: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("could not parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("could not parse updated_at: %w", err)
	}
	return &rec, nil
}

// Snapshot captures the device's persistable state, including bindings.
func (d *Device) Snapshot() Record {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec := Record{
		Name:       d.name,
		Path:       d.path,
		Console:    d.console,
		ScriptFile: d.scriptFile,
	}
	for slotID, a := range d.adapters {
		for _, portID := range a.Ports() {
			switch n := a.NIO(portID).(type) {
			case *nio.UDP:
				rec.Bindings = append(rec.Bindings, BindingRecord{
					Slot:       slotID,
					Port:       portID,
					Type:       BindingUDP,
					LocalPort:  n.LocalPort,
					RemotePort: n.RemotePort,
					RemoteHost: n.RemoteHost,
				})
			case *nio.TAP:
				rec.Bindings = append(rec.Bindings, BindingRecord{
					Slot:   slotID,
					Port:   portID,
					Type:   BindingTAP,
					Device: n.Device,
				})
			}
		}
	}
	return rec
}

// ApplyBindings reattaches persisted bindings to the device.
func (d *Device) ApplyBindings(bindings []BindingRecord) error {
	for _, b := range bindings {
		var (
			n   nio.NIO
			err error
		)
		switch b.Type {
		case BindingUDP:
			n, err = nio.NewUDP(b.LocalPort, b.RemotePort, b.RemoteHost)
		case BindingTAP:
			n, err = nio.NewTAP(b.Device)
		default:
			err = fmt.Errorf("unknown binding type %q", b.Type)
		}
		if err != nil {
			return fmt.Errorf("could not restore binding on slot %d port %d: %w", b.Slot, b.Port, err)
		}
		if err := d.SlotAddNIO(b.Slot, b.Port, n); err != nil {
			return err
		}
	}
	return nil
}
