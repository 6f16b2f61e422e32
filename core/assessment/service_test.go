package assessment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

type fakeRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]Component
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]Component)}
}

func (r *fakeRepo) CreateComponent(_ context.Context, comp Component) (Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	comp.ID = fmt.Sprintf("comp-%d", r.seq)
	r.byID[comp.ID] = comp
	return comp, nil
}

func (r *fakeRepo) QueryAllComponents(_ context.Context) ([]Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comps := make([]Component, 0, len(r.byID))
	for _, comp := range r.byID {
		comps = append(comps, comp)
	}
	return comps, nil
}

func (r *fakeRepo) GetComponentByID(_ context.Context, id string) (Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comp, ok := r.byID[id]; ok {
		return comp, nil
	}
	return Component{}, ErrNotFound
}

func (r *fakeRepo) GetComponentByIdentity(_ context.Context, componentID, subjectID string) (Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, comp := range r.byID {
		if comp.ComponentID == componentID && comp.SubjectID == subjectID {
			return comp, nil
		}
	}
	return Component{}, ErrNotFound
}

func (r *fakeRepo) FilterComponents(_ context.Context, filter QueryFilter) ([]Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comps := make([]Component, 0)
	for _, comp := range r.byID {
		if filter.SubjectID != "" && comp.SubjectID != filter.SubjectID {
			continue
		}
		if filter.ComponentID != "" && comp.ComponentID != filter.ComponentID {
			continue
		}
		if filter.Kind != "" && comp.Kind != filter.Kind {
			continue
		}
		if filter.Tag != "" && comp.Tag != filter.Tag {
			continue
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

func (r *fakeRepo) QueryComponentsBySubject(_ context.Context, subjectID string) ([]Component, error) {
	return r.FilterComponents(context.Background(), QueryFilter{SubjectID: subjectID})
}

func (r *fakeRepo) UpdateComponent(_ context.Context, comp Component) (Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[comp.ID]; !ok {
		return Component{}, ErrNotFound
	}
	r.byID[comp.ID] = comp
	return comp, nil
}

func (r *fakeRepo) DeleteComponent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func newComp(componentID, subjectID string, contribution Percent) NewComponent {
	return NewComponent{
		ComponentID:  componentID,
		SubjectID:    subjectID,
		Kind:         "assignment",
		MaxScore:     100,
		Contribution: contribution,
	}
}

func Test_service_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), fakeSubjects{"MATH101": true, "PHY101": true})

	if _, err := svc.Create(ctx, newComp("A1", "NOPE", 10)); errors.Cause(err) != ErrSubjectNotFound {
		t.Errorf("Create() error = %v, wantErr %v", err, ErrSubjectNotFound)
	}

	if _, err := svc.Create(ctx, newComp("A1", "MATH101", 60)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	if _, err := svc.Create(ctx, newComp("A1", "MATH101", 10)); errors.Cause(err) != ErrExists {
		t.Errorf("Create() error = %v, wantErr %v", err, ErrExists)
	}

	// a sum of exactly 100 is accepted
	if _, err := svc.Create(ctx, newComp("A2", "MATH101", 40)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	// anything above 100 is not
	if _, err := svc.Create(ctx, newComp("A3", "MATH101", 0.5)); errors.Cause(err) != ErrContributionExceeded {
		t.Errorf("Create() error = %v, wantErr %v", err, ErrContributionExceeded)
	}

	// other subjects keep their own budget
	if _, err := svc.Create(ctx, newComp("A1", "PHY101", 100)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
}

func Test_service_Create_concurrent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), fakeSubjects{"MATH101": true})

	// 10 concurrent writers of weight 30; only 3 can fit under 100
	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, newComp(fmt.Sprintf("A%d", i), "MATH101", 30))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var created, rejected int
	for err := range results {
		switch errors.Cause(err) {
		case nil:
			created++
		case ErrContributionExceeded:
			rejected++
		default:
			t.Fatalf("Create() unexpected error, %v", err)
		}
	}
	if created != 3 || rejected != 7 {
		t.Errorf("created = %d, rejected = %d; want 3 and 7", created, rejected)
	}

	_, sum, err := svc.QueryBySubject(ctx, "MATH101")
	if err != nil {
		t.Fatalf("QueryBySubject() failed, %v", err)
	}
	if sum != 90 {
		t.Errorf("contribution sum = %v; want 90", sum)
	}
}

func Test_service_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), fakeSubjects{"MATH101": true})

	a1, err := svc.Create(ctx, newComp("A1", "MATH101", 60))
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if _, err = svc.Create(ctx, newComp("A2", "MATH101", 40)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	// the sum check excludes the component's own pre-update contribution
	if _, err = svc.Update(ctx, a1.ID, newComp("A1", "MATH101", 60)); err != nil {
		t.Errorf("Update() failed, %v", err)
	}

	if _, err = svc.Update(ctx, a1.ID, newComp("A1", "MATH101", 61)); errors.Cause(err) != ErrContributionExceeded {
		t.Errorf("Update() error = %v, wantErr %v", err, ErrContributionExceeded)
	}

	// identity change onto an existing sibling
	if _, err = svc.Update(ctx, a1.ID, newComp("A2", "MATH101", 10)); errors.Cause(err) != ErrExists {
		t.Errorf("Update() error = %v, wantErr %v", err, ErrExists)
	}

	if _, err = svc.Update(ctx, "nope", newComp("A9", "MATH101", 1)); errors.Cause(err) != ErrNotFound {
		t.Errorf("Update() error = %v, wantErr %v", err, ErrNotFound)
	}
}

func Test_service_QueryBySubject(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), fakeSubjects{"MATH101": true})

	if _, _, err := svc.QueryBySubject(ctx, "NOPE"); errors.Cause(err) != ErrSubjectNotFound {
		t.Errorf("QueryBySubject() error = %v, wantErr %v", err, ErrSubjectNotFound)
	}

	if _, err := svc.Create(ctx, newComp("A1", "MATH101", 30)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if _, err := svc.Create(ctx, newComp("A2", "MATH101", 45.5)); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	comps, sum, err := svc.QueryBySubject(ctx, "MATH101")
	if err != nil {
		t.Fatalf("QueryBySubject() failed, %v", err)
	}
	if len(comps) != 2 {
		t.Errorf("components = %d; want 2", len(comps))
	}
	if sum != 75.5 {
		t.Errorf("contribution sum = %v; want 75.5", sum)
	}
}
