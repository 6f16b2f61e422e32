package group

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

var (
	ErrNotFound        = core.NewNotFoundError("group not found")
	ErrExists          = core.NewConflictError("group with the same ID already exists")
	ErrSubjectNotFound = core.NewNotFoundError("subject with the ID not found")
	ErrStudentNotFound = core.NewNotFoundError("student with the ID not found")
	ErrNameMismatch    = core.NewValidationError(errors.New("student ID and name do not match"))
)

type (
	SubjectLookup interface {
		Exists(ctx context.Context, subjectID string) (bool, error)
	}

	// StudentDirectory resolves student profiles for roster checks.
	StudentDirectory interface {
		GetByID(ctx context.Context, id string) (student.Student, error)
	}

	Repository interface {
		CreateGroup(ctx context.Context, grp Group) (Group, error)
		QueryAllGroups(ctx context.Context) ([]Group, error)
		GetGroupByID(ctx context.Context, id string) (Group, error)
		GetGroupByGroupID(ctx context.Context, groupID string) (Group, error)
		// UpdateGroup replaces the whole stored group document.
		UpdateGroup(ctx context.Context, grp Group) (Group, error)
		DeleteGroup(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, ng NewGroup) (Group, error)
		QueryAll(ctx context.Context) ([]Group, error)
		GetByID(ctx context.Context, id string) (Group, error)
		Update(ctx context.Context, id string, ng NewGroup) (Group, error)
		// Enroll merges roster entries into a group; students already on the
		// roster keep their existing entry.
		Enroll(ctx context.Context, id string, es EnrollStudents) (Group, error)
		Delete(ctx context.Context, id string) error
		// Exists reports existence by the school-facing group code.
		Exists(ctx context.Context, groupID string) (bool, error)
		// ExistsByID reports existence by the stored id.
		ExistsByID(ctx context.Context, id string) (bool, error)
	}

	service struct {
		repo     Repository
		subjects SubjectLookup
		students StudentDirectory
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, subjects SubjectLookup, students StudentDirectory) Service {
	return &service{repo: repo, subjects: subjects, students: students}
}

// checkRoster verifies each roster entry names an existing student by their
// enrolled full name.
func (svc *service) checkRoster(ctx context.Context, roster map[string]string) error {
	for studentID, name := range roster {
		st, err := svc.students.GetByID(ctx, studentID)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return ErrStudentNotFound
			}
			return err
		}
		if st.FullName != name {
			return ErrNameMismatch
		}
	}
	return nil
}

func (svc *service) Create(ctx context.Context, ng NewGroup) (Group, error) {
	exists, err := svc.subjects.Exists(ctx, ng.SubjectID)
	if err != nil {
		return Group{}, errors.Wrap(err, "checking subject existence")
	}
	if !exists {
		return Group{}, ErrSubjectNotFound
	}

	if _, err := svc.repo.GetGroupByGroupID(ctx, ng.GroupID); err == nil {
		return Group{}, ErrExists
	} else if errors.Cause(err) != ErrNotFound {
		return Group{}, err
	}

	if err := svc.checkRoster(ctx, ng.Students); err != nil {
		return Group{}, err
	}

	now := time.Now().UTC()
	grp := Group{
		GroupID:    ng.GroupID,
		Tag:        ng.Tag,
		SubjectID:  ng.SubjectID,
		FacultyIDs: ng.FacultyIDs,
		Students:   ng.Students,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if grp.Students == nil {
		grp.Students = make(map[string]string)
	}
	return svc.repo.CreateGroup(ctx, grp)
}

func (svc *service) QueryAll(ctx context.Context) ([]Group, error) {
	return svc.repo.QueryAllGroups(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Group, error) {
	return svc.repo.GetGroupByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, ng NewGroup) (Group, error) {
	grp, err := svc.repo.GetGroupByID(ctx, id)
	if err != nil {
		return Group{}, err
	}

	if ng.GroupID != grp.GroupID {
		if other, err := svc.repo.GetGroupByGroupID(ctx, ng.GroupID); err == nil {
			if other.ID != grp.ID {
				return Group{}, ErrExists
			}
		} else if errors.Cause(err) != ErrNotFound {
			return Group{}, err
		}
	}

	if err := svc.checkRoster(ctx, ng.Students); err != nil {
		return Group{}, err
	}

	grp.GroupID = ng.GroupID
	grp.Tag = ng.Tag
	grp.SubjectID = ng.SubjectID
	grp.FacultyIDs = ng.FacultyIDs
	grp.Students = ng.Students
	if grp.Students == nil {
		grp.Students = make(map[string]string)
	}
	grp.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateGroup(ctx, grp)
}

func (svc *service) Enroll(ctx context.Context, id string, es EnrollStudents) (Group, error) {
	grp, err := svc.repo.GetGroupByID(ctx, id)
	if err != nil {
		return Group{}, err
	}

	if grp.Students == nil {
		grp.Students = make(map[string]string)
	}
	for studentID, name := range es.Students {
		if _, ok := grp.Students[studentID]; !ok {
			grp.Students[studentID] = name
		}
	}
	grp.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateGroup(ctx, grp)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteGroup(ctx, id)
}

func (svc *service) Exists(ctx context.Context, groupID string) (bool, error) {
	return NewLookup(svc.repo).Exists(ctx, groupID)
}

func (svc *service) ExistsByID(ctx context.Context, id string) (bool, error) {
	return NewLookup(svc.repo).ExistsByID(ctx, id)
}

// Lookup answers group existence checks straight off the repository.
// Collaborators that only need existence checks can take it instead of the
// full Service, which keeps service construction acyclic.
type Lookup struct {
	repo Repository
}

func NewLookup(repo Repository) Lookup { return Lookup{repo: repo} }

func (l Lookup) Exists(ctx context.Context, groupID string) (bool, error) {
	if _, err := l.repo.GetGroupByGroupID(ctx, groupID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l Lookup) ExistsByID(ctx context.Context, id string) (bool, error) {
	if _, err := l.repo.GetGroupByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
