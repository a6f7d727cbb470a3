package services

import "os"

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}
