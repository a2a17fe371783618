package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// EffectRepository registro de efectos por documento. Los constructores graban
// la lista en orden; la anulación la lee (ordenada por seq) y la reproduce invertida.
type EffectRepository interface {
	CreateBatch(effects []*entity.DocumentEffect) error
	ListByDoc(docType, docID string) ([]*entity.DocumentEffect, error)
	DeleteByDoc(docType, docID string) error
}
