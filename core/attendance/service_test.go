package attendance

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

type fakeRepo struct {
	seq  int
	byID map[string]Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]Record)}
}

func (r *fakeRepo) CreateRecord(_ context.Context, rec Record) (Record, error) {
	r.seq++
	rec.ID = fmt.Sprintf("att-%d", r.seq)
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *fakeRepo) QueryAllRecords(_ context.Context) ([]Record, error) {
	recs := make([]Record, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *fakeRepo) GetRecordByID(_ context.Context, id string) (Record, error) {
	if rec, ok := r.byID[id]; ok {
		return rec, nil
	}
	return Record{}, ErrNotFound
}

func (r *fakeRepo) GetRecordBySlot(_ context.Context, studentID, date, hour string) (Record, error) {
	for _, rec := range r.byID {
		if rec.StudentID == studentID && rec.Date == date && rec.Hour == hour {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (r *fakeRepo) FilterRecords(_ context.Context, filter QueryFilter) ([]Record, error) {
	recs := make([]Record, 0)
	for _, rec := range r.byID {
		if filter.StudentID != "" && rec.StudentID != filter.StudentID {
			continue
		}
		if filter.GroupID != "" && rec.GroupID != filter.GroupID {
			continue
		}
		if filter.MarkedBy != "" && rec.MarkedBy != filter.MarkedBy {
			continue
		}
		if filter.Date != "" && rec.Date != filter.Date {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *fakeRepo) UpdateRecord(_ context.Context, rec Record) (Record, error) {
	if _, ok := r.byID[rec.ID]; !ok {
		return Record{}, ErrNotFound
	}
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *fakeRepo) DeleteRecord(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeLookup map[string]bool

func (l fakeLookup) Exists(_ context.Context, id string) (bool, error)     { return l[id], nil }
func (l fakeLookup) ExistsByID(_ context.Context, id string) (bool, error) { return l[id], nil }

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	employees := fakeLookup{"emp-1": true}
	groups := fakeLookup{"grp-1": true}
	students := fakeLookup{"std-1": true, "std-2": true}
	return NewService(repo, employees, groups, students), repo
}

func Test_service_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	nr := NewRecord{StudentID: "std-1", Date: "2021-03-01", MarkedBy: "emp-1", Hour: "08:00", GroupID: "grp-1", Kind: "present"}

	tests := []struct {
		name    string
		mutate  func(nr NewRecord) NewRecord
		wantErr error
	}{
		{name: "unknown employee", mutate: func(nr NewRecord) NewRecord { nr.MarkedBy = "nope"; return nr }, wantErr: ErrEmployeeNotFound},
		{name: "unknown group", mutate: func(nr NewRecord) NewRecord { nr.GroupID = "nope"; return nr }, wantErr: ErrGroupNotFound},
		{name: "unknown student", mutate: func(nr NewRecord) NewRecord { nr.StudentID = "nope"; return nr }, wantErr: ErrStudentNotFound},
		{name: "ok", mutate: func(nr NewRecord) NewRecord { return nr }},
		{name: "slot taken", mutate: func(nr NewRecord) NewRecord { return nr }, wantErr: ErrSlotTaken},
		{name: "same student other hour", mutate: func(nr NewRecord) NewRecord { nr.Hour = "09:00"; return nr }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.mutate(nr))
			if errors.Cause(err) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_service_CreateBulk(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	bm := BulkMarking{
		StudentIDs: map[string]string{"std-1": "present", "std-2": "late"},
		Date:       "2021-03-01",
		Hours:      []string{"08:00", "09:00"},
		GroupID:    "grp-1",
	}
	recs, err := svc.CreateBulk(ctx, "emp-1", bm)
	if err != nil {
		t.Fatalf("CreateBulk() failed, %v", err)
	}
	// one record per student per hour
	if len(recs) != 4 {
		t.Errorf("records = %d; want 4", len(recs))
	}
	for _, rec := range recs {
		if rec.MarkedBy != "emp-1" {
			t.Errorf("marked_by = %q; want emp-1", rec.MarkedBy)
		}
		if rec.StudentID == "std-2" && rec.Kind != "late" {
			t.Errorf("std-2 kind = %q; want late", rec.Kind)
		}
	}

	if _, err = svc.CreateBulk(ctx, "nope", bm); errors.Cause(err) != ErrEmployeeNotFound {
		t.Errorf("CreateBulk() error = %v, wantErr %v", err, ErrEmployeeNotFound)
	}
}

func Test_service_CreateBulk_noPartialWrite(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	// std-1 already holds 09:00; the whole batch must be rejected before any write
	if _, err := svc.Create(ctx, NewRecord{
		StudentID: "std-1", Date: "2021-03-01", MarkedBy: "emp-1", Hour: "09:00", GroupID: "grp-1",
	}); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	_, err := svc.CreateBulk(ctx, "emp-1", BulkMarking{
		StudentIDs: map[string]string{"std-1": "present", "std-2": "present"},
		Date:       "2021-03-01",
		Hours:      []string{"08:00", "09:00"},
		GroupID:    "grp-1",
	})
	if errors.Cause(err) != ErrSlotTaken {
		t.Fatalf("CreateBulk() error = %v, wantErr %v", err, ErrSlotTaken)
	}
	if len(repo.byID) != 1 {
		t.Errorf("records = %d; want only the pre-existing one", len(repo.byID))
	}
}

func Test_service_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, err := svc.Create(ctx, NewRecord{
		StudentID: "std-1", Date: "2021-03-01", MarkedBy: "emp-1", Hour: "08:00", GroupID: "grp-1", Kind: "present",
	})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	// only the marking employee can touch the record
	_, err = svc.Update(ctx, rec.ID, NewRecord{
		StudentID: "std-1", Date: "2021-03-01", MarkedBy: "emp-2", Hour: "08:00", GroupID: "grp-1",
	})
	if errors.Cause(err) != ErrMarkerMismatch {
		t.Errorf("Update() error = %v, wantErr %v", err, ErrMarkerMismatch)
	}

	got, err := svc.Update(ctx, rec.ID, NewRecord{
		StudentID: "std-1", Date: "2021-03-01", MarkedBy: "emp-1", Hour: "08:00", GroupID: "grp-1", Kind: "late",
	})
	if err != nil {
		t.Fatalf("Update() failed, %v", err)
	}
	if got.Kind != "late" {
		t.Errorf("kind = %q; want late", got.Kind)
	}
}
