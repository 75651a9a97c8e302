package usecase

import (
	"context"
	"fmt"

	"beneficiary-registry/internal/converter"
	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/internal/domain/repository"
	"beneficiary-registry/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BeneficiaryUsecase interface {
	Create(ctx context.Context, req *dto.BeneficiaryRequest) (int64, error)
	Update(ctx context.Context, id int64, req *dto.BeneficiaryRequest) (int64, error)
	GetAll(ctx context.Context, search string) ([]dto.BeneficiaryListItem, error)
	GetByID(ctx context.Context, id int64) (*dto.BeneficiaryDetailResponse, error)
}

type beneficiaryUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	lookupRepo         repository.LookupRepository
	personRepo         repository.PersonRepository
	beneficiaryRepo    repository.BeneficiaryRepository
	relatedPersonRepo  repository.RelatedPersonRepository
	serializePersonIDs bool
}

func NewBeneficiaryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	lookupRepo repository.LookupRepository,
	personRepo repository.PersonRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
	relatedPersonRepo repository.RelatedPersonRepository,
	serializePersonIDs bool,
) BeneficiaryUsecase {
	return &beneficiaryUsecase{
		db:                 db,
		log:                log,
		lookupRepo:         lookupRepo,
		personRepo:         personRepo,
		beneficiaryRepo:    beneficiaryRepo,
		relatedPersonRepo:  relatedPersonRepo,
		serializePersonIDs: serializePersonIDs,
	}
}

func (u *beneficiaryUsecase) Create(ctx context.Context, req *dto.BeneficiaryRequest) (int64, error) {
	id, err := u.save(ctx, req, nil)
	metrics.RecordBeneficiaryWrite(metrics.OperationCreate, writeOutcome(err))
	return id, err
}

func (u *beneficiaryUsecase) Update(ctx context.Context, id int64, req *dto.BeneficiaryRequest) (int64, error) {
	savedID, err := u.save(ctx, req, &id)
	metrics.RecordBeneficiaryWrite(metrics.OperationUpdate, writeOutcome(err))
	return savedID, err
}

// save writes the whole form in one transaction. With existingID nil a new
// beneficiary is created; otherwise the beneficiary is updated in place and
// its responsible parties and family members are replaced.
func (u *beneficiaryUsecase) save(ctx context.Context, req *dto.BeneficiaryRequest, existingID *int64) (int64, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return 0, tx.Error
	}
	defer tx.Rollback()

	ids := &personIDAllocator{db: tx, repo: u.personRepo, lock: u.serializePersonIDs}

	lookups, err := u.resolveLookups(tx, req)
	if err != nil {
		u.log.Warnf("Failed to resolve lookups: %+v", err)
		return 0, err
	}

	person, err := converter.BeneficiaryRequestToPerson(0, req, lookups)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBeneficiary, err)
	}

	var beneficiaryID int64
	if existingID == nil {
		beneficiaryID, err = ids.next()
		if err != nil {
			u.log.Warnf("Failed to allocate beneficiary id: %+v", err)
			return 0, err
		}
		person.ID = beneficiaryID

		if err := u.personRepo.Create(tx, person); err != nil {
			u.log.WithFields(pgErrorFields(err)).Warnf("Failed to create beneficiary person: %+v", err)
			return 0, err
		}

		beneficiary := &entity.Beneficiary{
			PersonID:      beneficiaryID,
			BenefitTypeID: req.TipoBeneficio.Value,
		}
		if err := u.beneficiaryRepo.Create(tx, beneficiary); err != nil {
			u.log.WithFields(pgErrorFields(err)).Warnf("Failed to create beneficiary: %+v", err)
			return 0, err
		}
	} else {
		beneficiaryID = *existingID

		exists, err := u.beneficiaryRepo.Exists(tx, beneficiaryID)
		if err != nil {
			u.log.Warnf("Failed to find beneficiary: %+v", err)
			return 0, err
		}
		if !exists {
			u.log.Warnf("Failed to find beneficiary: %+v", "beneficiary not found")
			return 0, ErrBeneficiaryNotFound
		}
		person.ID = beneficiaryID

		if err := u.personRepo.Update(tx, person); err != nil {
			u.log.WithFields(pgErrorFields(err)).Warnf("Failed to update beneficiary person: %+v", err)
			return 0, err
		}
		if err := u.beneficiaryRepo.UpdateBenefitType(tx, beneficiaryID, req.TipoBeneficio.Value); err != nil {
			u.log.WithFields(pgErrorFields(err)).Warnf("Failed to update benefit type: %+v", err)
			return 0, err
		}
		if err := u.deleteRelatedPeople(tx, beneficiaryID); err != nil {
			u.log.Warnf("Failed to delete related people: %+v", err)
			return 0, err
		}
	}

	if err := u.createRelatedPeople(tx, ids, entity.RelationResponsible, beneficiaryID, req.Responsaveis); err != nil {
		u.log.WithFields(pgErrorFields(err)).Warnf("Failed to create responsible parties: %+v", err)
		return 0, err
	}
	if err := u.createRelatedPeople(tx, ids, entity.RelationFamilyMember, beneficiaryID, req.Familia); err != nil {
		u.log.WithFields(pgErrorFields(err)).Warnf("Failed to create family members: %+v", err)
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	return beneficiaryID, nil
}

func (u *beneficiaryUsecase) resolveLookups(tx *gorm.DB, req *dto.BeneficiaryRequest) (converter.ResolvedLookups, error) {
	var (
		lookups converter.ResolvedLookups
		err     error
	)
	if lookups.ReligionID, err = u.lookupRepo.ResolveID(tx, entity.LookupReligion, req.Religiao); err != nil {
		return lookups, err
	}
	if lookups.RaceID, err = u.lookupRepo.ResolveID(tx, entity.LookupRace, req.Raca); err != nil {
		return lookups, err
	}
	if lookups.MunicipalityID, err = u.lookupRepo.ResolveID(tx, entity.LookupMunicipality, req.Cidade); err != nil {
		return lookups, err
	}
	if lookups.HospitalID, err = u.lookupRepo.ResolveID(tx, entity.LookupHospital, req.Hospital); err != nil {
		return lookups, err
	}
	return lookups, nil
}

// createRelatedPeople inserts a person for every non-blank row. The
// association row is only written when the kinship label resolves.
func (u *beneficiaryUsecase) createRelatedPeople(tx *gorm.DB, ids *personIDAllocator, relation entity.Relation, beneficiaryID int64, rows []dto.RelatedPersonRequest) error {
	for _, row := range rows {
		if row.IsEmpty() {
			continue
		}

		personID, err := ids.next()
		if err != nil {
			return err
		}
		if err := u.personRepo.Create(tx, converter.RelatedPersonRequestToPerson(personID, relation.PersonKind(), row)); err != nil {
			return err
		}

		kinshipID, err := u.lookupRepo.ResolveID(tx, entity.LookupKinshipDegree, row.Parentesco)
		if err != nil {
			return err
		}
		if kinshipID == nil {
			u.log.Warnf("Skipping %s association for person %d: kinship '%s' not resolved", relation, personID, row.Parentesco)
			continue
		}

		if err := u.relatedPersonRepo.Create(tx, relation, beneficiaryID, personID, *kinshipID); err != nil {
			return err
		}
	}
	return nil
}

// deleteRelatedPeople removes both association sets of a beneficiary and then
// the people they referenced.
func (u *beneficiaryUsecase) deleteRelatedPeople(tx *gorm.DB, beneficiaryID int64) error {
	relations := []entity.Relation{entity.RelationResponsible, entity.RelationFamilyMember}

	var personIDs []int64
	for _, relation := range relations {
		ids, err := u.relatedPersonRepo.FindPersonIDs(tx, relation, beneficiaryID)
		if err != nil {
			return err
		}
		personIDs = append(personIDs, ids...)
	}

	for _, relation := range relations {
		if err := u.relatedPersonRepo.DeleteByBeneficiary(tx, relation, beneficiaryID); err != nil {
			return err
		}
	}

	return u.personRepo.DeleteByIDs(tx, personIDs)
}

func (u *beneficiaryUsecase) GetAll(ctx context.Context, search string) ([]dto.BeneficiaryListItem, error) {
	records, err := u.beneficiaryRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to find all beneficiaries: %+v", err)
		return nil, err
	}

	return converter.BeneficiaryRecordsToListItems(records), nil
}

func (u *beneficiaryUsecase) GetByID(ctx context.Context, id int64) (*dto.BeneficiaryDetailResponse, error) {
	record, err := u.beneficiaryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find beneficiary: %+v", err)
		return nil, err
	}
	if record == nil {
		u.log.Warnf("Failed to find beneficiary: %+v", "beneficiary not found")
		return nil, ErrBeneficiaryNotFound
	}

	return converter.BeneficiaryRecordToDetail(record), nil
}

// personIDAllocator hands out numcad_pes values inside one transaction. When
// lock is set, the first allocation takes the id-space advisory lock, which
// is held until the transaction ends.
type personIDAllocator struct {
	db     *gorm.DB
	repo   repository.PersonRepository
	lock   bool
	locked bool
}

func (a *personIDAllocator) next() (int64, error) {
	if a.lock && !a.locked {
		if err := a.repo.LockIDSpace(a.db); err != nil {
			return 0, err
		}
		a.locked = true
	}
	return a.repo.NextID(a.db)
}
