package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"sentra/internal/models"
	"sentra/internal/repositories"
)

// typeHints guesses an entity type from its name when the source data
// carries no explicit type. Order matters: the first matching family
// wins, and shell-style names are checked before generic corporate
// suffixes.
var typeHints = []struct {
	entityType models.EntityType
	terms      []string
}{
	{models.EntityTypeShellCompany, []string{"holdings", "offshore", "nominee", "ventures international"}},
	{models.EntityTypeIntermediary, []string{"bank", "exchange", "transfer", "remittance", "financial", "payments"}},
	{models.EntityTypeNonProfit, []string{"foundation", "charity", "trust", "relief", "fund"}},
	{models.EntityTypeCorporation, []string{"llc", "ltd", "corp", "inc", "gmbh", "plc", "limited"}},
}

// Service standardizes records and writes entities and transactions.
type Service struct {
	entities repositories.EntityRepository
	txs      repositories.TransactionRepository
	logger   *zap.Logger
}

// NewService creates an ingest service.
func NewService(entities repositories.EntityRepository, txs repositories.TransactionRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{entities: entities, txs: txs, logger: logger}
}

// IngestFile parses and ingests one uploaded file.
func (s *Service) IngestFile(ctx context.Context, filename string, r io.Reader) (*Summary, error) {
	records, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return s.IngestRecords(ctx, records, filename)
}

// IngestRecords writes standardized records. Invalid records are
// reported in the summary, not fatal; duplicate transaction references
// are counted as skipped.
func (s *Service) IngestRecords(ctx context.Context, records []Record, sourceTag string) (*Summary, error) {
	summary := &Summary{Processed: len(records)}

	// name -> entity id, filled lazily across the batch
	ids := make(map[string]uint)

	var batch []models.Transaction
	for i, rec := range records {
		if err := validateRecord(rec); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}

		senderID, created, err := s.resolveEntity(ctx, ids, rec.Sender, sourceTag)
		if err != nil {
			return nil, err
		}
		summary.Entities += created

		receiverID, created, err := s.resolveEntity(ctx, ids, rec.Receiver, sourceTag)
		if err != nil {
			return nil, err
		}
		summary.Entities += created

		batch = append(batch, models.Transaction{
			TransactionID: rec.TransactionID,
			SenderID:      senderID,
			ReceiverID:    receiverID,
			Amount:        rec.Amount,
			Currency:      rec.Currency,
			Type:          rec.Type,
			Timestamp:     rec.Timestamp,
			SourceFile:    sourceTag,
			RawData:       rec.Raw,
		})
	}

	inserted, err := s.txs.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	summary.Inserted = inserted
	summary.Skipped = summary.Processed - inserted - len(summary.Errors)

	s.logger.Info("ingestion finished",
		zap.String("source", sourceTag),
		zap.Int("processed", summary.Processed),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("entities_created", summary.Entities),
		zap.Int("errors", len(summary.Errors)))

	return summary, nil
}

func validateRecord(rec Record) error {
	if rec.Sender == "" || rec.Receiver == "" {
		return ErrMissingParties
	}
	if rec.Amount.IsNegative() {
		return ErrBadAmount
	}
	return nil
}

// resolveEntity returns the id for a name, creating the entity on first
// sight. Returns how many entities were created (0 or 1).
func (s *Service) resolveEntity(ctx context.Context, ids map[string]uint, name, sourceTag string) (uint, int, error) {
	if id, ok := ids[name]; ok {
		return id, 0, nil
	}

	existing, err := s.entities.GetByName(ctx, name)
	if err == nil {
		ids[name] = existing.ID
		return existing.ID, 0, nil
	}
	if !errors.Is(err, repositories.ErrEntityNotFound) {
		return 0, 0, err
	}

	entity := &models.Entity{
		Name:       name,
		Type:       GuessEntityType(name),
		SourceFile: sourceTag,
	}
	if err := s.entities.Upsert(ctx, entity); err != nil {
		return 0, 0, err
	}
	ids[name] = entity.ID
	return entity.ID, 1, nil
}

// GuessEntityType classifies a name by its wording. Anything without a
// recognizable organizational marker is treated as an individual when it
// looks like a personal name, otherwise as other.
func GuessEntityType(name string) models.EntityType {
	lower := strings.ToLower(name)
	for _, hint := range typeHints {
		for _, term := range hint.terms {
			if strings.Contains(lower, term) {
				return hint.entityType
			}
		}
	}
	if looksLikePersonalName(name) {
		return models.EntityTypeIndividual
	}
	return models.EntityTypeOther
}

func looksLikePersonalName(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 3 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if len(r) == 0 || !(r[0] >= 'A' && r[0] <= 'Z') {
			return false
		}
	}
	return true
}
