package service

import (
	"os"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

const FinnhubKeyConfig = "finnhub_api_key"

// KeySource yields an API key, or "" when it has none.
type KeySource interface {
	Lookup() (key, source string)
}

// KeyChain queries its sources in order; the first non-empty key wins.
type KeyChain struct {
	sources []KeySource
}

func NewKeyChain(sources ...KeySource) *KeyChain {
	return &KeyChain{sources: sources}
}

func (k *KeyChain) Resolve() (string, string) {
	for _, s := range k.sources {
		if key, source := s.Lookup(); key != "" {
			return key, source
		}
	}
	return "", ""
}

// StoreKey reads the key from the site_configs table.
type StoreKey struct {
	DB  *gorm.DB
	Key string
}

func (s StoreKey) Lookup() (string, string) {
	var row model.SiteConfig
	if err := s.DB.Where("key = ?", s.Key).First(&row).Error; err != nil {
		return "", ""
	}
	return row.Value, "store"
}

// EnvKey reads the key from an environment variable.
type EnvKey struct {
	Name string
}

func (e EnvKey) Lookup() (string, string) {
	if v := os.Getenv(e.Name); v != "" {
		return v, "env"
	}
	return "", ""
}
