package usecase

import (
	"io"
	"testing"

	"beneficiary-registry/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

type mockLookupRepository struct {
	mock.Mock
}

func (m *mockLookupRepository) FindAll(db *gorm.DB, table entity.LookupTable) ([]entity.LookupOption, error) {
	args := m.Called(db, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LookupOption), args.Error(1)
}

func (m *mockLookupRepository) ResolveID(db *gorm.DB, table entity.LookupTable, value string) (*int64, error) {
	args := m.Called(db, table, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

type mockPersonRepository struct {
	mock.Mock
}

func (m *mockPersonRepository) LockIDSpace(db *gorm.DB) error {
	return m.Called(db).Error(0)
}

func (m *mockPersonRepository) NextID(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPersonRepository) Create(db *gorm.DB, person *entity.Person) error {
	return m.Called(db, person).Error(0)
}

func (m *mockPersonRepository) Update(db *gorm.DB, person *entity.Person) error {
	return m.Called(db, person).Error(0)
}

func (m *mockPersonRepository) DeleteByIDs(db *gorm.DB, ids []int64) error {
	return m.Called(db, ids).Error(0)
}

type mockBeneficiaryRepository struct {
	mock.Mock
}

func (m *mockBeneficiaryRepository) Create(db *gorm.DB, beneficiary *entity.Beneficiary) error {
	return m.Called(db, beneficiary).Error(0)
}

func (m *mockBeneficiaryRepository) Exists(db *gorm.DB, id int64) (bool, error) {
	args := m.Called(db, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBeneficiaryRepository) UpdateBenefitType(db *gorm.DB, id int64, benefitTypeID *int64) error {
	return m.Called(db, id, benefitTypeID).Error(0)
}

func (m *mockBeneficiaryRepository) FindAll(db *gorm.DB, search string) ([]entity.BeneficiaryRecord, error) {
	args := m.Called(db, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BeneficiaryRecord), args.Error(1)
}

func (m *mockBeneficiaryRepository) FindByID(db *gorm.DB, id int64) (*entity.BeneficiaryRecord, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BeneficiaryRecord), args.Error(1)
}

type mockRelatedPersonRepository struct {
	mock.Mock
}

func (m *mockRelatedPersonRepository) Create(db *gorm.DB, relation entity.Relation, beneficiaryID, personID, kinshipID int64) error {
	return m.Called(db, relation, beneficiaryID, personID, kinshipID).Error(0)
}

func (m *mockRelatedPersonRepository) FindPersonIDs(db *gorm.DB, relation entity.Relation, beneficiaryID int64) ([]int64, error) {
	args := m.Called(db, relation, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockRelatedPersonRepository) DeleteByBeneficiary(db *gorm.DB, relation entity.Relation, beneficiaryID int64) error {
	return m.Called(db, relation, beneficiaryID).Error(0)
}
