package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"beneficiary-registry/internal/domain/entity"
	domainRepo "beneficiary-registry/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type lookupRepository struct {
	log *logrus.Logger
}

func NewLookupRepository(log *logrus.Logger) domainRepo.LookupRepository {
	return &lookupRepository{log: log}
}

// Table and column names come from the closed entity.LookupTables registry,
// never from request input, so they are safe to format into SQL.

func (r *lookupRepository) FindAll(db *gorm.DB, table entity.LookupTable) ([]entity.LookupOption, error) {
	query := fmt.Sprintf(
		"SELECT %s AS code, %s AS label FROM %s ORDER BY %s",
		table.IDColumn(), table.LabelColumn, table.Name, table.LabelColumn,
	)

	options := []entity.LookupOption{}
	if err := db.Raw(query).Scan(&options).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", table.Name, err)
	}
	return options, nil
}

func (r *lookupRepository) ResolveID(db *gorm.DB, table entity.LookupTable, value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ILIKE ? LIMIT 1",
		table.IDColumn(), table.Name, table.LabelColumn,
	)

	var id int64
	err := db.Raw(query, value).Row().Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Value '%s' not found in table '%s'", value, table.Name)
			return nil, nil
		}
		return nil, fmt.Errorf("resolve %s in %s: %w", value, table.Name, err)
	}
	return &id, nil
}
