package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr       string
	GinMode       string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBName        string
	JWTSecret     string
	CRMURL        string
	CRMBusinessID string
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func LoadEnv() Env {
	return Env{
		AppAddr:       getenv("APP_ADDR", ":8080"),
		GinMode:       getenv("GIN_MODE", ""),
		DBUser:        getenv("DB_USER", "root"),
		DBPassword:    getenv("DB_PASSWORD", ""),
		DBHost:        getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:        getenv("DB_NAME", "tablebook"),
		JWTSecret:     getenv("JWT_SECRET", "change-me-in-production"),
		CRMURL:        getenv("CRM_URL", ""),
		CRMBusinessID: getenv("CRM_BUSINESS_ID", ""),
	}
}
