package marks

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
)

var (
	// errors
	ErrNotFound          = core.NewNotFoundError("marks not found")
	ErrExists            = core.NewConflictError("marks already present")
	ErrSubjectNotFound   = core.NewNotFoundError("subject with the ID not found")
	ErrStudentNotFound   = core.NewNotFoundError("student with the ID not found")
	ErrComponentNotFound = core.NewNotFoundError("assessment with the ID not found")
	ErrSubjectMismatch   = core.NewConflictError("assessment is not of the same subject")
	ErrScoreExceedsMax   = core.NewValidationError(errors.New("score exceeds the assessment's maximum"))
	ErrZeroMaxScore      = core.NewValidationError(errors.New("assessment has a non-positive maximum score"))
)

type (
	// Registry is the assessment registry view the ledger validates against.
	Registry interface {
		GetByID(ctx context.Context, id string) (assessment.Component, error)
		QueryBySubject(ctx context.Context, subjectID string) ([]assessment.Component, float64, error)
	}

	SubjectLookup interface {
		Exists(ctx context.Context, subjectID string) (bool, error)
	}

	StudentLookup interface {
		Exists(ctx context.Context, id string) (bool, error)
	}

	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		QueryAllRecords(ctx context.Context) ([]Record, error)
		GetRecordByID(ctx context.Context, id string) (Record, error)
		GetRecordByIdentity(ctx context.Context, studentID, subjectID string) (Record, error)
		QueryRecordsByStudent(ctx context.Context, studentID string) ([]Record, error)
		QueryRecordsBySubject(ctx context.Context, subjectID string) ([]Record, error)
		// UpdateRecord replaces the whole stored record document.
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		DeleteRecord(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nr NewRecord) (Record, error)
		QueryAll(ctx context.Context) ([]Record, error)
		GetByID(ctx context.Context, id string) (Record, error)
		QueryByStudent(ctx context.Context, studentID string) ([]Record, error)
		QueryBySubject(ctx context.Context, subjectID string) ([]Record, error)
		Replace(ctx context.Context, id string, nr NewRecord) (Record, error)
		Amend(ctx context.Context, id string, as AmendScores) (Record, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		registry Registry
		subjects SubjectLookup
		students StudentLookup
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, registry Registry, subjects SubjectLookup, students StudentLookup) Service {
	return &service{
		repo:     repo,
		registry: registry,
		subjects: subjects,
		students: students,
	}
}

func (svc *service) checkSubjectAndStudent(ctx context.Context, subjectID, studentID string) error {
	exists, err := svc.subjects.Exists(ctx, subjectID)
	if err != nil {
		return errors.Wrap(err, "checking subject existence")
	}
	if !exists {
		return ErrSubjectNotFound
	}

	exists, err = svc.students.Exists(ctx, studentID)
	if err != nil {
		return errors.Wrap(err, "checking student existence")
	}
	if !exists {
		return ErrStudentNotFound
	}
	return nil
}

// weigh validates a score against its component and returns the weighted
// contribution (score/max * contribution) it adds to a record's total.
func (svc *service) weigh(ctx context.Context, subjectID string, cs ComponentScore) (float64, error) {
	comp, err := svc.registry.GetByID(ctx, cs.ComponentID)
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return 0, ErrComponentNotFound
		}
		return 0, err
	}
	if comp.SubjectID != subjectID {
		return 0, ErrSubjectMismatch
	}
	if comp.MaxScore <= 0 {
		return 0, ErrZeroMaxScore
	}
	if cs.Score > comp.MaxScore {
		return 0, ErrScoreExceedsMax
	}
	return (cs.Score / comp.MaxScore) * float64(comp.Contribution), nil
}

// computeTotal derives a record's total from scratch over every supplied pair.
func (svc *service) computeTotal(ctx context.Context, subjectID string, components []ComponentScore) (float64, error) {
	var total float64
	for _, cs := range components {
		w, err := svc.weigh(ctx, subjectID, cs)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

func (svc *service) Create(ctx context.Context, nr NewRecord) (Record, error) {
	if err := svc.checkSubjectAndStudent(ctx, nr.SubjectID, nr.StudentID); err != nil {
		return Record{}, err
	}

	if _, err := svc.repo.GetRecordByIdentity(ctx, nr.StudentID, nr.SubjectID); err == nil {
		return Record{}, ErrExists
	} else if errors.Cause(err) != ErrNotFound {
		return Record{}, err
	}

	total, err := svc.computeTotal(ctx, nr.SubjectID, nr.Components)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		StudentID:  nr.StudentID,
		SubjectID:  nr.SubjectID,
		Components: nr.Components,
		Total:      total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec, err = svc.repo.CreateRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	svc.setStatus(ctx, &rec)
	return rec, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Record, error) {
	recs, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	svc.setStatuses(ctx, recs)
	return recs, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	svc.setStatus(ctx, &rec)
	return rec, nil
}

func (svc *service) QueryByStudent(ctx context.Context, studentID string) ([]Record, error) {
	recs, err := svc.repo.QueryRecordsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	svc.setStatuses(ctx, recs)
	return recs, nil
}

func (svc *service) QueryBySubject(ctx context.Context, subjectID string) ([]Record, error) {
	recs, err := svc.repo.QueryRecordsBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	svc.setStatuses(ctx, recs)
	return recs, nil
}

// Replace swaps a record's whole component set; the total is recomputed from
// scratch exactly as on create.
func (svc *service) Replace(ctx context.Context, id string, nr NewRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if err := svc.checkSubjectAndStudent(ctx, nr.SubjectID, nr.StudentID); err != nil {
		return Record{}, err
	}

	// (student, subject) change: re-check uniqueness against the new identity
	if rec.StudentID != nr.StudentID || rec.SubjectID != nr.SubjectID {
		if other, err := svc.repo.GetRecordByIdentity(ctx, nr.StudentID, nr.SubjectID); err == nil {
			if other.ID != rec.ID {
				return Record{}, ErrExists
			}
		} else if errors.Cause(err) != ErrNotFound {
			return Record{}, err
		}
	}

	total, err := svc.computeTotal(ctx, nr.SubjectID, nr.Components)
	if err != nil {
		return Record{}, err
	}

	rec.StudentID = nr.StudentID
	rec.SubjectID = nr.SubjectID
	rec.Components = nr.Components
	rec.Total = total
	rec.UpdatedAt = time.Now().UTC()
	rec, err = svc.repo.UpdateRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	svc.setStatus(ctx, &rec)
	return rec, nil
}

// Amend merges scores into a record append-only: entries whose component is
// already recorded are silently skipped (no overwrite), new entries are
// validated as on create and their weighted contribution is added to the
// running total. Nothing is written if any new entry fails validation; a
// merge where every entry was a skip still persists and reports success.
func (svc *service) Amend(ctx context.Context, id string, as AmendScores) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	for _, cs := range as.Components {
		if rec.HasComponent(cs.ComponentID) {
			continue
		}
		w, err := svc.weigh(ctx, rec.SubjectID, cs)
		if err != nil {
			return Record{}, err
		}
		rec.Total += w
		rec.Components = append(rec.Components, cs)
	}

	rec.UpdatedAt = time.Now().UTC()
	rec, err = svc.repo.UpdateRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	svc.setStatus(ctx, &rec)
	return rec, nil
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteRecord(ctx, id)
}

// setStatus derives the draft/complete view against the current registry
// state; it is best-effort and leaves Status empty if the registry cannot be
// consulted.
func (svc *service) setStatus(ctx context.Context, rec *Record) {
	components, _, err := svc.registry.QueryBySubject(ctx, rec.SubjectID)
	if err != nil {
		return
	}
	rec.Status = StatusComplete
	for _, comp := range components {
		if !rec.HasComponent(comp.ID) {
			rec.Status = StatusDraft
			break
		}
	}
}

func (svc *service) setStatuses(ctx context.Context, recs []Record) {
	for i := range recs {
		svc.setStatus(ctx, &recs[i])
	}
}
