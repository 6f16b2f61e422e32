package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound         = core.NewNotFoundError("attendance not found")
	ErrEmployeeNotFound = core.NewNotFoundError("employee with the ID not found")
	ErrGroupNotFound    = core.NewNotFoundError("group with the ID not found")
	ErrStudentNotFound  = core.NewNotFoundError("student with the ID not found")
	ErrSlotTaken        = core.NewConflictError("attendance for this student and hour already recorded")
	ErrMarkerMismatch   = core.NewValidationError(errors.New("only the marking employee can update the attendance"))
)

type (
	EmployeeLookup interface {
		Exists(ctx context.Context, id string) (bool, error)
	}

	GroupLookup interface {
		ExistsByID(ctx context.Context, id string) (bool, error)
	}

	StudentLookup interface {
		Exists(ctx context.Context, id string) (bool, error)
	}

	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		QueryAllRecords(ctx context.Context) ([]Record, error)
		GetRecordByID(ctx context.Context, id string) (Record, error)
		// GetRecordBySlot fetches by the (student, hour) pair on a date.
		GetRecordBySlot(ctx context.Context, studentID, date, hour string) (Record, error)
		FilterRecords(ctx context.Context, filter QueryFilter) ([]Record, error)
		// UpdateRecord replaces the whole stored attendance document.
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		DeleteRecord(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nr NewRecord) (Record, error)
		// CreateBulk fans a marking out to one record per student per hour.
		// markedBy is the acting employee, taken from the caller's identity.
		CreateBulk(ctx context.Context, markedBy string, bm BulkMarking) ([]Record, error)
		QueryAll(ctx context.Context) ([]Record, error)
		Filter(ctx context.Context, filter *QueryFilter) ([]Record, error)
		GetByID(ctx context.Context, id string) (Record, error)
		Update(ctx context.Context, id string, nr NewRecord) (Record, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo      Repository
		employees EmployeeLookup
		groups    GroupLookup
		students  StudentLookup
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, employees EmployeeLookup, groups GroupLookup, students StudentLookup) Service {
	return &service{
		repo:      repo,
		employees: employees,
		groups:    groups,
		students:  students,
	}
}

func (svc *service) checkMarkerAndGroup(ctx context.Context, markedBy, groupID string) error {
	exists, err := svc.employees.Exists(ctx, markedBy)
	if err != nil {
		return errors.Wrap(err, "checking employee existence")
	}
	if !exists {
		return ErrEmployeeNotFound
	}

	exists, err = svc.groups.ExistsByID(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "checking group existence")
	}
	if !exists {
		return ErrGroupNotFound
	}
	return nil
}

func (svc *service) checkSlotFree(ctx context.Context, studentID, date, hour string) error {
	if _, err := svc.repo.GetRecordBySlot(ctx, studentID, date, hour); err == nil {
		return ErrSlotTaken
	} else if errors.Cause(err) != ErrNotFound {
		return err
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nr NewRecord) (Record, error) {
	if err := svc.checkMarkerAndGroup(ctx, nr.MarkedBy, nr.GroupID); err != nil {
		return Record{}, err
	}

	exists, err := svc.students.Exists(ctx, nr.StudentID)
	if err != nil {
		return Record{}, errors.Wrap(err, "checking student existence")
	}
	if !exists {
		return Record{}, ErrStudentNotFound
	}

	if err := svc.checkSlotFree(ctx, nr.StudentID, nr.Date, nr.Hour); err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		StudentID: nr.StudentID,
		Date:      nr.Date,
		Timestamp: nr.Timestamp,
		MarkedBy:  nr.MarkedBy,
		Hour:      nr.Hour,
		GroupID:   nr.GroupID,
		Kind:      nr.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateRecord(ctx, rec)
}

func (svc *service) CreateBulk(ctx context.Context, markedBy string, bm BulkMarking) ([]Record, error) {
	if err := svc.checkMarkerAndGroup(ctx, markedBy, bm.GroupID); err != nil {
		return nil, err
	}

	// validate the whole batch before writing anything
	for studentID := range bm.StudentIDs {
		exists, err := svc.students.Exists(ctx, studentID)
		if err != nil {
			return nil, errors.Wrap(err, "checking student existence")
		}
		if !exists {
			return nil, ErrStudentNotFound
		}
		for _, hour := range bm.Hours {
			if err := svc.checkSlotFree(ctx, studentID, bm.Date, hour); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now().UTC()
	recs := make([]Record, 0, len(bm.StudentIDs)*len(bm.Hours))
	for studentID, kind := range bm.StudentIDs {
		for _, hour := range bm.Hours {
			rec, err := svc.repo.CreateRecord(ctx, Record{
				StudentID: studentID,
				Date:      bm.Date,
				Timestamp: bm.Timestamp,
				MarkedBy:  markedBy,
				Hour:      hour,
				GroupID:   bm.GroupID,
				Kind:      kind,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Record, error) {
	return svc.repo.QueryAllRecords(ctx)
}

func (svc *service) Filter(ctx context.Context, filter *QueryFilter) ([]Record, error) {
	if filter == nil || filter.IsEmpty() {
		return svc.repo.QueryAllRecords(ctx)
	}
	return svc.repo.FilterRecords(ctx, *filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (Record, error) {
	return svc.repo.GetRecordByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, nr NewRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.MarkedBy != nr.MarkedBy {
		return Record{}, ErrMarkerMismatch
	}

	exists, err := svc.groups.ExistsByID(ctx, nr.GroupID)
	if err != nil {
		return Record{}, errors.Wrap(err, "checking group existence")
	}
	if !exists {
		return Record{}, ErrGroupNotFound
	}

	rec.StudentID = nr.StudentID
	rec.Date = nr.Date
	rec.Timestamp = nr.Timestamp
	rec.Hour = nr.Hour
	rec.GroupID = nr.GroupID
	rec.Kind = nr.Kind
	rec.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateRecord(ctx, rec)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteRecord(ctx, id)
}
