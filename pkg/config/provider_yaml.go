package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Database struct {
			ConnectionString string `yaml:"connection_string"`
		} `yaml:"database"`
		HTTP struct {
			ListenAddr  string `yaml:"listen_addr"`
			Port        int    `yaml:"port"`
			TLSCertPath string `yaml:"tls_cert_path"`
			TLSKeyPath  string `yaml:"tls_key_path"`
		} `yaml:"http"`
		Management struct {
			ListenAddr string `yaml:"listen_addr"`
			Port       int    `yaml:"port"`
			AuthToken  string `yaml:"auth_token"`
		} `yaml:"management"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Database: DatabaseData{
			ConnectionString: yamlConfig.Database.ConnectionString,
		},
		HTTP: HTTPData{
			ListenAddr:  yamlConfig.HTTP.ListenAddr,
			Port:        yamlConfig.HTTP.Port,
			TLSCertPath: yamlConfig.HTTP.TLSCertPath,
			TLSKeyPath:  yamlConfig.HTTP.TLSKeyPath,
		},
		Management: ManagementData{
			ListenAddr: yamlConfig.Management.ListenAddr,
			Port:       yamlConfig.Management.Port,
			AuthToken:  yamlConfig.Management.AuthToken,
		},
	}

	if config.Database.ConnectionString == "" {
		return nil, fmt.Errorf("config file %s does not define database.connection_string", y.filename)
	}

	y.config = config
	return config, nil
}

// SaveManagementToken is not supported for YAML configurations
func (y *YAMLProvider) SaveManagementToken(token string) error {
	return fmt.Errorf("YAML configuration is read-only; set management.auth_token in %s", y.filename)
}

// IsReadOnly returns true since YAML files are not modified at runtime
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
