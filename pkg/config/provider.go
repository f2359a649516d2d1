// Package config provides configuration loading from YAML files or SQLite databases.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Persist a newly generated management auth token so it survives restarts
	SaveManagementToken(token string) error

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Database   DatabaseData   `json:"database"`
	HTTP       HTTPData       `json:"http,omitempty"`
	Management ManagementData `json:"management,omitempty"`
}

// DatabaseData holds the PostgreSQL connection settings
type DatabaseData struct {
	ConnectionString string `json:"connection_string"`
}

// HTTPData holds configuration for the public REST server
type HTTPData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string `json:"tls_key_path,omitempty"`
}

// ManagementData holds configuration for the management API
type ManagementData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	AuthToken  string `json:"auth_token,omitempty"`
}
