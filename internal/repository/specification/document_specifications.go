package specification

import "gorm.io/gorm"

type ByProcessingID struct {
	ProcessingID string
}

func (s ByProcessingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("processing_id = ?", s.ProcessingID)
}

type ByProcessingIDs struct {
	ProcessingIDs []string
}

func (s ByProcessingIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("processing_id IN ?", s.ProcessingIDs)
}

type BySessionKey struct {
	SessionKey string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_key = ?", s.SessionKey)
}
