package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

func handle(db *gorm.DB, dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = db
	}
	if dbc.Ctx != nil {
		return t.WithContext(dbc.Ctx)
	}
	return t
}

// updateByVersion applies updates only while the row still carries expectedVersion and
// advances the version. A false result means the row changed or vanished.
func updateByVersion(t *gorm.DB, model interface{}, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	cols := make(map[string]interface{}, len(updates)+2)
	for k, v := range updates {
		cols[k] = v
	}
	cols["version"] = gorm.Expr("version + 1")
	if _, ok := cols["updated_at"]; !ok {
		cols["updated_at"] = time.Now().UTC()
	}
	res := t.Model(model).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(cols)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
