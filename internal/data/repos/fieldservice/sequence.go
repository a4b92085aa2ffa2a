package fieldservice

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type SequenceRepo interface {
	// Next advances the named counter and returns its new value. The first call returns 1.
	Next(dbc dbctx.Context, name string) (int64, error)
	Current(dbc dbctx.Context, name string) (int64, error)
}

type sequenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	return &sequenceRepo{db: db, log: baseLog.With("repo", "SequenceRepo")}
}

func (r *sequenceRepo) Next(dbc dbctx.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("sequence name required")
	}
	t := handle(r.db, dbc)
	row := &types.Sequence{Name: name, Value: 1}
	if err := t.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value": gorm.Expr("sequence_counter.value + 1"),
		}),
	}).Create(row).Error; err != nil {
		return 0, err
	}
	return r.Current(dbc, name)
}

func (r *sequenceRepo) Current(dbc dbctx.Context, name string) (int64, error) {
	var row types.Sequence
	if err := handle(r.db, dbc).Where("name = ?", name).Limit(1).Find(&row).Error; err != nil {
		return 0, err
	}
	return row.Value, nil
}
