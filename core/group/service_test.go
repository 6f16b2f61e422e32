package group

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/student"
)

type fakeRepo struct {
	seq  int
	byID map[string]Group
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]Group)}
}

func (r *fakeRepo) CreateGroup(_ context.Context, grp Group) (Group, error) {
	r.seq++
	grp.ID = fmt.Sprintf("grp-%d", r.seq)
	r.byID[grp.ID] = grp
	return grp, nil
}

func (r *fakeRepo) QueryAllGroups(_ context.Context) ([]Group, error) {
	grps := make([]Group, 0, len(r.byID))
	for _, grp := range r.byID {
		grps = append(grps, grp)
	}
	return grps, nil
}

func (r *fakeRepo) GetGroupByID(_ context.Context, id string) (Group, error) {
	if grp, ok := r.byID[id]; ok {
		return grp, nil
	}
	return Group{}, ErrNotFound
}

func (r *fakeRepo) GetGroupByGroupID(_ context.Context, groupID string) (Group, error) {
	for _, grp := range r.byID {
		if grp.GroupID == groupID {
			return grp, nil
		}
	}
	return Group{}, ErrNotFound
}

func (r *fakeRepo) UpdateGroup(_ context.Context, grp Group) (Group, error) {
	if _, ok := r.byID[grp.ID]; !ok {
		return Group{}, ErrNotFound
	}
	r.byID[grp.ID] = grp
	return grp, nil
}

func (r *fakeRepo) DeleteGroup(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeSubjects map[string]bool

func (s fakeSubjects) Exists(_ context.Context, subjectID string) (bool, error) {
	return s[subjectID], nil
}

type fakeStudents map[string]student.Student

func (s fakeStudents) GetByID(_ context.Context, id string) (student.Student, error) {
	if st, ok := s[id]; ok {
		return st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func newTestService() Service {
	subjects := fakeSubjects{"MATH101": true}
	students := fakeStudents{
		"std-1": {ID: "std-1", FullName: "kinaya"},
		"std-2": {ID: "std-2", FullName: "imani"},
	}
	return NewService(newFakeRepo(), subjects, students)
}

func Test_service_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name    string
		ng      NewGroup
		wantErr error
	}{
		{name: "unknown subject", ng: NewGroup{GroupID: "G1", SubjectID: "NOPE"}, wantErr: ErrSubjectNotFound},
		{
			name:    "unknown roster student",
			ng:      NewGroup{GroupID: "G1", SubjectID: "MATH101", Students: map[string]string{"nope": "x"}},
			wantErr: ErrStudentNotFound,
		},
		{
			name:    "roster name mismatch",
			ng:      NewGroup{GroupID: "G1", SubjectID: "MATH101", Students: map[string]string{"std-1": "imani"}},
			wantErr: ErrNameMismatch,
		},
		{name: "ok", ng: NewGroup{GroupID: "G1", SubjectID: "MATH101", Students: map[string]string{"std-1": "kinaya"}}},
		{name: "duplicate group code", ng: NewGroup{GroupID: "G1", SubjectID: "MATH101"}, wantErr: ErrExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.ng)
			if errors.Cause(err) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_service_Enroll(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	grp, err := svc.Create(ctx, NewGroup{
		GroupID:   "G1",
		SubjectID: "MATH101",
		Students:  map[string]string{"std-1": "kinaya"},
	})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	// std-1 is already enrolled: their entry is kept, not overwritten
	grp, err = svc.Enroll(ctx, grp.ID, EnrollStudents{Students: map[string]string{
		"std-1": "someone else",
		"std-2": "imani",
	}})
	if err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}
	if len(grp.Students) != 2 {
		t.Errorf("roster size = %d; want 2", len(grp.Students))
	}
	if grp.Students["std-1"] != "kinaya" {
		t.Errorf("std-1 = %q; want untouched kinaya", grp.Students["std-1"])
	}
	if grp.Students["std-2"] != "imani" {
		t.Errorf("std-2 = %q; want imani", grp.Students["std-2"])
	}

	if _, err = svc.Enroll(ctx, "nope", EnrollStudents{Students: map[string]string{"std-1": "kinaya"}}); errors.Cause(err) != ErrNotFound {
		t.Errorf("Enroll() error = %v, wantErr %v", err, ErrNotFound)
	}
}

func Test_service_Exists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	grp, err := svc.Create(ctx, NewGroup{GroupID: "G1", SubjectID: "MATH101"})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	for _, tt := range []struct {
		name string
		got  func() (bool, error)
		want bool
	}{
		{name: "by code", got: func() (bool, error) { return svc.Exists(ctx, "G1") }, want: true},
		{name: "by code missing", got: func() (bool, error) { return svc.Exists(ctx, "NOPE") }},
		{name: "by id", got: func() (bool, error) { return svc.ExistsByID(ctx, grp.ID) }, want: true},
		{name: "by id missing", got: func() (bool, error) { return svc.ExistsByID(ctx, "nope") }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := tt.got()
			if err != nil {
				t.Fatalf("existence check failed, %v", err)
			}
			if exists != tt.want {
				t.Errorf("exists = %v; want %v", exists, tt.want)
			}
		})
	}
}
