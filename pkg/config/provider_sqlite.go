package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	query := `
		SELECT db_connection_string,
		       http_listen_addr, http_port, http_tls_cert_path, http_tls_key_path,
		       mgmt_listen_addr, mgmt_port, mgmt_auth_token
		FROM configs
		WHERE name = 'default'
	`

	var httpListenAddr, tlsCertPath, tlsKeyPath sql.NullString
	var mgmtListenAddr, mgmtAuthToken sql.NullString
	var httpPort, mgmtPort sql.NullInt64

	err := s.db.QueryRow(query).Scan(
		&config.Database.ConnectionString,
		&httpListenAddr, &httpPort, &tlsCertPath, &tlsKeyPath,
		&mgmtListenAddr, &mgmtPort, &mgmtAuthToken,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no 'default' configuration found in %s", s.dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query configuration: %w", err)
	}

	if httpListenAddr.Valid {
		config.HTTP.ListenAddr = httpListenAddr.String
	}
	if httpPort.Valid {
		config.HTTP.Port = int(httpPort.Int64)
	}
	if tlsCertPath.Valid {
		config.HTTP.TLSCertPath = tlsCertPath.String
	}
	if tlsKeyPath.Valid {
		config.HTTP.TLSKeyPath = tlsKeyPath.String
	}
	if mgmtListenAddr.Valid {
		config.Management.ListenAddr = mgmtListenAddr.String
	}
	if mgmtPort.Valid {
		config.Management.Port = int(mgmtPort.Int64)
	}
	if mgmtAuthToken.Valid {
		config.Management.AuthToken = mgmtAuthToken.String
	}

	return config, nil
}

// SaveManagementToken persists a generated auth token to the database
func (s *SQLiteProvider) SaveManagementToken(token string) error {
	result, err := s.db.Exec(`UPDATE configs SET mgmt_auth_token = ? WHERE name = 'default'`, token)
	if err != nil {
		return fmt.Errorf("failed to save management token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("no 'default' configuration row to update in %s", s.dbPath)
	}

	return nil
}

// IsReadOnly returns false since SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
