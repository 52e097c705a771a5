package models

import (
	"strings"
	"time"
)

// EntityType classifies a transaction participant. Unknown inputs are
// normalized to EntityTypeOther rather than rejected.
type EntityType string

const (
	EntityTypeCorporation  EntityType = "corporation"
	EntityTypeNonProfit    EntityType = "non_profit"
	EntityTypeShellCompany EntityType = "shell_company"
	EntityTypeIntermediary EntityType = "financial_intermediary"
	EntityTypeIndividual   EntityType = "individual"
	EntityTypeOther        EntityType = "other"
)

// EntityTypes lists every valid entity type.
var EntityTypes = []EntityType{
	EntityTypeCorporation,
	EntityTypeNonProfit,
	EntityTypeShellCompany,
	EntityTypeIntermediary,
	EntityTypeIndividual,
	EntityTypeOther,
}

// NormalizeEntityType maps free-form type strings onto the closed set.
// Common aliases from upstream files ("non-profit", "shell company") are
// accepted; anything unrecognized becomes EntityTypeOther.
func NormalizeEntityType(s string) EntityType {
	switch EntityType(strings.ToLower(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_")))) {
	case EntityTypeCorporation, "company", "corp":
		return EntityTypeCorporation
	case EntityTypeNonProfit, "nonprofit", "charity":
		return EntityTypeNonProfit
	case EntityTypeShellCompany, "shell":
		return EntityTypeShellCompany
	case EntityTypeIntermediary, "intermediary", "bank":
		return EntityTypeIntermediary
	case EntityTypeIndividual, "person":
		return EntityTypeIndividual
	default:
		return EntityTypeOther
	}
}

// Entity is a participant in the transaction graph: a corporation,
// non-profit, shell company, financial intermediary, or individual.
// Entities are created during ingestion when first seen and are amended,
// never deleted.
type Entity struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Type        EntityType `gorm:"type:varchar(32);not null;default:'other'" json:"type"`
	Description string     `json:"description"`
	SourceFile  string     `json:"source_file"` // source-of-record tag: upload filename or "kafka"
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
